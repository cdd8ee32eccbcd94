// Package sheets reads the legacy shop spreadsheet. The sheet is the
// system of record the shop has been running on; this client only ever
// reads, the sync job reconciles its rows into Postgres.
package sheets

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/nerdware-developers/pos-backend/internal/config"
)

type Client struct {
	srv           *sheetsapi.Service
	spreadsheetID string
	salesRange    string
	expensesRange string
	productsRange string
}

func NewClient(ctx context.Context, cfg *config.SheetsConfig) (*Client, error) {
	jwt, err := google.JWTConfigFromJSON(
		[]byte(cfg.CredentialsJSON),
		sheetsapi.SpreadsheetsReadonlyScope,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	srv, err := sheetsapi.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets client: %w", err)
	}

	return &Client{
		srv:           srv,
		spreadsheetID: cfg.SpreadsheetID,
		salesRange:    cfg.SalesRange,
		expensesRange: cfg.ExpensesRange,
		productsRange: cfg.ProductsRange,
	}, nil
}

func (c *Client) readRange(ctx context.Context, readRange string) ([][]interface{}, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, readRange).
		Context(ctx).
		ValueRenderOption("UNFORMATTED_VALUE").
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to read range %s: %w", readRange, err)
	}
	if len(resp.Values) <= 1 {
		return nil, nil
	}
	// First row is the header.
	return resp.Values[1:], nil
}
