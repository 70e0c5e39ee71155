package db

import (
	"context"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v5"
)

type querySpanKey struct{}

// queryTracer mirrors every pool query into a sentry span when the request
// already carries a transaction. Without one it stays out of the way.
type queryTracer struct{}

func newQueryTracer() *queryTracer {
	return &queryTracer{}
}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	if sentry.SpanFromContext(ctx) == nil {
		return ctx
	}

	description, operation := summarizeQuery(data.SQL)
	span := sentry.StartSpan(
		ctx,
		"db.query",
		sentry.WithDescription(description),
		sentry.WithSpanOrigin(sentry.SpanOriginManual),
	)
	span.SetData("db.system", "postgresql")
	if operation != "" {
		span.SetData("db.operation", operation)
	}

	return context.WithValue(span.Context(), querySpanKey{}, span)
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	span, _ := ctx.Value(querySpanKey{}).(*sentry.Span)
	if span == nil {
		return
	}

	if data.Err != nil {
		span.Status = sentry.SpanStatusInternalError
		span.SetData("db.error", data.Err.Error())
	} else {
		span.Status = sentry.SpanStatusOK
		if rows := data.CommandTag.RowsAffected(); rows >= 0 {
			span.SetData("db.rows_affected", rows)
		}
	}

	span.Finish()
}

// summarizeQuery collapses a query to a single line capped at 512 bytes and
// reports its leading keyword.
func summarizeQuery(query string) (string, string) {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "sql.query", ""
	}

	description := strings.Join(fields, " ")
	const maxLen = 512
	if len(description) > maxLen {
		description = description[:maxLen]
	}
	return description, strings.ToUpper(fields[0])
}
