// Package duck is a saved query store backed by an in-memory DuckDB.
// Callers register the driver with a blank import of go-duckdb.
package duck

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	nt "joinfilter/entity"
	"joinfilter/util"
)

const createQueries = `
	CREATE TABLE IF NOT EXISTS queries (
		id VARCHAR PRIMARY KEY,
		title VARCHAR NOT NULL DEFAULT '',
		activation_query VARCHAR NOT NULL DEFAULT '',
		result_query VARCHAR NOT NULL DEFAULT '',
		rest_params VARCHAR NOT NULL DEFAULT '[]',
		rest_headers VARCHAR NOT NULL DEFAULT '[]'
	)
`

type Duck struct {
	db       *sql.DB
	logger   nt.Logger
	filename string
}

func New(lgr nt.Logger) (dk *Duck, err error) {

	db, err := sql.Open("duckdb", "")
	if err != nil {
		err = errors.Wrapf(err, "failed to open memo duck")
		return
	}

	_, err = db.Exec(createQueries)
	if err != nil {
		db.Close()
		err = errors.Wrapf(err, "failed to create queries table")
		return
	}

	dk = &Duck{
		db:     db,
		logger: lgr,
	}

	return
}

func (dk *Duck) Close() {
	dk.db.Close()
}

// Name returns the name of the last loaded file
func (dk *Duck) Name() string {
	return dk.filename
}

// Load saved queries from a yaml file
func (dk *Duck) Load(ctx context.Context, path string) (err error) {

	var queries []nt.SavedQuery
	err = util.LoadConfig(&queries, path)
	if err != nil {
		return
	}

	for _, query := range queries {
		err = dk.Save(ctx, query)
		if err != nil {
			return
		}
	}

	dk.filename = path
	dk.logger.Info(ctx, "loaded queries", "path", path, "count", len(queries))
	return
}

// Save inserts or replaces a query
func (dk *Duck) Save(ctx context.Context, query nt.SavedQuery) (err error) {

	if query.ID == "" {
		err = errors.Errorf("cannot save query without id")
		return
	}

	params, err := encodeParams(query.RestParams)
	if err != nil {
		return
	}
	headers, err := encodeParams(query.RestHeaders)
	if err != nil {
		return
	}

	_, err = dk.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO queries
			(id, title, activation_query, result_query, rest_params, rest_headers)
		VALUES (?, ?, ?, ?, ?, ?)
	`, query.ID, query.Title, query.ActivationQuery, query.ResultQuery, params, headers)
	err = errors.Wrapf(err, "failed to save query %s", query.ID)
	return
}

// Find all queries, ordered by id
func (dk *Duck) Find(ctx context.Context) (hits nt.QueryHits, err error) {

	rows, err := dk.db.QueryContext(ctx, `
		SELECT id, title, activation_query, result_query, rest_params, rest_headers
		FROM queries
		ORDER BY id
	`)
	if err != nil {
		err = errors.Wrapf(err, "failed to query saved queries")
		return
	}
	defer rows.Close()

	for rows.Next() {
		var query nt.SavedQuery
		var params, headers string

		err = rows.Scan(&query.ID, &query.Title, &query.ActivationQuery, &query.ResultQuery, &params, &headers)
		if err != nil {
			err = errors.Wrapf(err, "failed to scan query")
			return
		}

		query.RestParams, err = decodeParams(params)
		if err != nil {
			return
		}
		query.RestHeaders, err = decodeParams(headers)
		if err != nil {
			return
		}

		hits.Hits = append(hits.Hits, query)
	}

	err = rows.Err()
	if err != nil {
		err = errors.Wrapf(err, "error iterating queries")
		return
	}

	hits.Total = len(hits.Hits)
	return
}

// unexported

func encodeParams(params []nt.Param) (text string, err error) {

	if params == nil {
		params = []nt.Param{}
	}

	data, err := json.Marshal(params)
	if err != nil {
		err = errors.Wrapf(err, "failed to encode params")
		return
	}

	text = string(data)
	return
}

func decodeParams(text string) (params []nt.Param, err error) {

	err = json.Unmarshal([]byte(text), &params)
	if err != nil {
		err = errors.Wrapf(err, "failed to decode params")
		return
	}

	if len(params) == 0 {
		params = nil
	}
	return
}
