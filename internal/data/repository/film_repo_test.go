package repository

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// emptyRows satisfies pgx.Rows with no result set, enough to let FindAll
// run its scan loop without a database.
type emptyRows struct{}

func (emptyRows) Close()                                       {}
func (emptyRows) Err() error                                   { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (emptyRows) Next() bool                                   { return false }
func (emptyRows) Scan(dest ...any) error                       { return nil }
func (emptyRows) Values() ([]any, error)                       { return nil, nil }
func (emptyRows) RawValues() [][]byte                          { return nil }
func (emptyRows) Conn() *pgx.Conn                              { return nil }

type errRow struct{}

func (errRow) Scan(dest ...any) error { return pgx.ErrNoRows }

// capturingQueryer records the SQL and arguments of each call so tests can
// assert on the statements the repository assembles.
type capturingQueryer struct {
	sql  string
	args []any
}

func (q *capturingQueryer) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.sql = sql
	q.args = args
	return emptyRows{}, nil
}

func (q *capturingQueryer) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.sql = sql
	q.args = args
	return errRow{}
}

func (q *capturingQueryer) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.sql = sql
	q.args = args
	return pgconn.CommandTag{}, nil
}

func normalizeSQL(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}

func TestFilmFindAllQueryShape(t *testing.T) {
	search := "inception"

	tests := []struct {
		name        string
		search      *string
		tags        []string
		wantFrags   []string
		absentFrags []string
		wantArgs    []any
	}{
		{
			name: "no filters",
			wantFrags: []string{
				"SELECT DISTINCT f.id",
				"FROM films f ORDER BY f.title ASC",
			},
			absentFrags: []string{"WHERE", "JOIN"},
			wantArgs:    []any{},
		},
		{
			name:   "search only",
			search: &search,
			wantFrags: []string{
				"WHERE (f.title ILIKE $1 OR f.overview ILIKE $1)",
				"ORDER BY f.title ASC",
			},
			absentFrags: []string{"JOIN"},
			wantArgs:    []any{"%inception%"},
		},
		{
			name: "tags only",
			tags: []string{"Drama", "Sci-Fi"},
			wantFrags: []string{
				"JOIN film_tags ft ON ft.film_id = f.id",
				"JOIN tags t ON t.id = ft.tag_id",
				"WHERE t.name = ANY($1)",
			},
			absentFrags: []string{"ILIKE"},
			wantArgs:    []any{[]string{"Drama", "Sci-Fi"}},
		},
		{
			name:   "search and tags",
			search: &search,
			tags:   []string{"Drama"},
			wantFrags: []string{
				"JOIN film_tags ft ON ft.film_id = f.id",
				"WHERE t.name = ANY($1) AND (f.title ILIKE $2 OR f.overview ILIKE $2)",
			},
			wantArgs: []any{[]string{"Drama"}, "%inception%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &capturingQueryer{}
			repo := NewFilmRepository(db, zap.NewNop())

			films, err := repo.FindAll(context.Background(), tt.search, tt.tags)
			if err != nil {
				t.Fatalf("FindAll() error = %v", err)
			}
			if len(films) != 0 {
				t.Fatalf("FindAll() returned %d films from empty rows", len(films))
			}

			sql := normalizeSQL(db.sql)
			for _, frag := range tt.wantFrags {
				if !strings.Contains(sql, frag) {
					t.Errorf("query missing %q:\n%s", frag, sql)
				}
			}
			for _, frag := range tt.absentFrags {
				if strings.Contains(sql, frag) {
					t.Errorf("query unexpectedly contains %q:\n%s", frag, sql)
				}
			}
			if !reflect.DeepEqual(db.args, tt.wantArgs) {
				t.Errorf("args = %#v, want %#v", db.args, tt.wantArgs)
			}
		})
	}
}

func TestFilmFindAllIgnoresEmptySearch(t *testing.T) {
	empty := ""
	db := &capturingQueryer{}
	repo := NewFilmRepository(db, zap.NewNop())

	if _, err := repo.FindAll(context.Background(), &empty, nil); err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if strings.Contains(db.sql, "WHERE") {
		t.Errorf("empty search must not produce a WHERE clause:\n%s", db.sql)
	}
	if len(db.args) != 0 {
		t.Errorf("args = %#v, want none", db.args)
	}
}
