package common

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	domcommon "github.com/UDAY2232/LackLink/internal/domain/common"
)

func TestLikePattern_EscapesMetacharacters(t *testing.T) {
	assert.Equal(t, `%50\% off%`, LikePattern(" 50% off "))
	assert.Equal(t, `%a\_b%`, LikePattern("a_b"))
	assert.Equal(t, `%c:\\tmp%`, LikePattern(`c:\tmp`))
}

func TestBuildOrderBy(t *testing.T) {
	allowed := map[string]string{"price": "price", "name": "LOWER(name)"}

	assert.Equal(t, "ORDER BY price ASC, id ASC", BuildOrderBy("price", allowed, "asc", "created_at DESC"))
	assert.Equal(t, "ORDER BY LOWER(name) DESC, id ASC", BuildOrderBy("NAME", allowed, "desc", "created_at DESC"))
	assert.Equal(t, "ORDER BY created_at DESC", BuildOrderBy("id; DROP TABLE x", allowed, "asc", "created_at DESC"))
	assert.Equal(t, "", BuildOrderBy("", allowed, "asc", ""))
}

func TestAppendCond_NumbersPlaceholders(t *testing.T) {
	var where []string
	var args []any
	AppendCond(&where, &args, "a = $%d", 1)
	AppendCond(&where, &args, "(b ILIKE $%[1]d OR c ILIKE $%[1]d)", "x")

	assert.Equal(t, []string{"a = $1", "(b ILIKE $2 OR c ILIKE $2)"}, where)
	assert.Equal(t, "WHERE a = $1 AND (b ILIKE $2 OR c ILIKE $2)", WhereSQL(where))
	assert.Equal(t, "", WhereSQL(nil))
}

func TestClassify(t *testing.T) {
	notFound := fmt.Errorf("thing: %w", domcommon.ErrNotFound)
	conflict := fmt.Errorf("thing: %w", domcommon.ErrConflict)

	assert.Nil(t, Classify("op", nil, notFound, conflict))
	assert.Equal(t, notFound, Classify("op", sql.ErrNoRows, notFound, conflict))
	assert.Equal(t, conflict, Classify("op", &pq.Error{Code: "23505"}, notFound, conflict))

	err := Classify("op", errors.New("connection reset"), notFound, conflict)
	assert.ErrorIs(t, err, domcommon.ErrRemoteFailure)
	assert.Contains(t, err.Error(), "connection reset")
}
