package firestore

import (
	"context"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domcommon "github.com/UDAY2232/LackLink/internal/domain/common"
)

// "in" queries accept a bounded number of values per call.
const inQueryChunk = 10

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

// classify maps gRPC codes onto the domain taxonomy.
func classify(op string, err error, notFound, conflict error) error {
	switch {
	case err == nil:
		return nil
	case isNotFound(err) && notFound != nil:
		return notFound
	case isAlreadyExists(err) && conflict != nil:
		return conflict
	}
	return domcommon.Remote(op, err)
}

// decodeAll drains it, decoding each document with decode.
func decodeAll[T any](it *firestore.DocumentIterator, decode func(*firestore.DocumentSnapshot) (T, error)) ([]T, error) {
	defer it.Stop()
	out := make([]T, 0)
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		v, err := decode(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// queryIn runs base.Where(field, "in", chunk) for every chunk of values.
func queryIn[T any](
	ctx context.Context,
	base firestore.Query,
	field string,
	values []string,
	decode func(*firestore.DocumentSnapshot) (T, error),
) ([]T, error) {
	out := make([]T, 0)
	for _, chunk := range chunkStrings(dedupe(values), inQueryChunk) {
		vals := make([]any, 0, len(chunk))
		for _, v := range chunk {
			vals = append(vals, v)
		}
		got, err := decodeAll(base.Where(field, "in", vals).Documents(ctx), decode)
		if err != nil {
			return nil, err
		}
		out = append(out, got...)
	}
	return out, nil
}

func chunkStrings(xs []string, n int) [][]string {
	var out [][]string
	for len(xs) > 0 {
		k := n
		if len(xs) < k {
			k = len(xs)
		}
		out = append(out, xs[:k])
		xs = xs[k:]
	}
	return out
}

func dedupe(xs []string) []string {
	seen := make(map[string]struct{}, len(xs))
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		x = strings.TrimSpace(x)
		if x == "" {
			continue
		}
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		out = append(out, x)
	}
	return out
}

// Money is stored as a decimal string so no precision is lost.
func decimalToString(d decimal.Decimal) string { return d.String() }

func decimalPtrToString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseDecimalPtr(s string) *decimal.Decimal {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	d := parseDecimal(s)
	return &d
}

// uniqueKey is the doc id of the (user, product) guard documents.
func uniqueKey(userID, productID string) string {
	return strings.TrimSpace(userID) + "__" + strings.TrimSpace(productID)
}
