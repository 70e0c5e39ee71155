package views

// BookPageProps feeds the product detail page.
type BookPageProps struct {
	BookID         string
	Title          string
	Author         string
	Genre          string
	Description    string
	CoverURL       string
	Price          int
	PriceFormatted string
	Availability   string
	InStock        bool
}

// BookPage renders the product detail page for one record.
func BookPage(props BookPageProps) Component {
	return Component{name: "book", data: props}
}

// BookCard is one tile on the catalog listing.
type BookCard struct {
	Slug           string
	Title          string
	Author         string
	Genre          string
	CoverURL       string
	PriceFormatted string
}

// CatalogPageProps feeds the catalog listing page.
type CatalogPageProps struct {
	CatalogName string
	Cards       []BookCard
	Page        int
	HasPrev     bool
	PrevPage    int
	HasNext     bool
	NextPage    int
}

// CatalogPage renders the catalog listing.
func CatalogPage(props CatalogPageProps) Component {
	return Component{name: "catalog", data: props}
}

// CartLine is one rendered cart row.
type CartLine struct {
	BookID             string
	Title              string
	CoverURL           string
	Quantity           int
	PriceFormatted     string
	LineTotalFormatted string
}

// CartPageProps feeds the cart page.
type CartPageProps struct {
	Lines             []CartLine
	Count             int
	SubtotalFormatted string
	CheckoutEnabled   bool
}

// CartPage renders the visitor's cart.
func CartPage(props CartPageProps) Component {
	return Component{name: "cart", data: props}
}

// CheckoutCompletePage renders the post-payment landing page.
func CheckoutCompletePage() Component {
	return Component{name: "checkout_complete", data: nil}
}

// NotFoundPage renders the styled 404 page used by the router for unknown
// paths.
func NotFoundPage() Component {
	return Component{name: "not_found", data: nil}
}
