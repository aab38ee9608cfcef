package repository_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kestrelworks/redline/pkg/repository"
)

func TestMapError(t *testing.T) {
	notFound := errors.New("not found")
	duplicate := errors.New("duplicate")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil passes", nil, nil},
		{"no rows maps to not found", sql.ErrNoRows, notFound},
		{"wrapped no rows maps to not found", fmt.Errorf("query: %w", sql.ErrNoRows), notFound},
		{"unique violation maps to duplicate", &pgconn.PgError{Code: "23505"}, duplicate},
		{"other pg error passes through", &pgconn.PgError{Code: "23503"}, nil},
		{"unknown error passes through", errors.New("boom"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.MapError(tt.err, notFound, duplicate)

			if tt.want != nil {
				if got != tt.want {
					t.Errorf("MapError() = %v, want %v", got, tt.want)
				}
				return
			}
			if got != tt.err {
				t.Errorf("MapError() = %v, want original error %v", got, tt.err)
			}
		})
	}
}
