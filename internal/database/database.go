// Package database mirrors the listing collection into an Oracle table for
// offline analysis. Best effort only: the local snapshot in internal/store
// remains the source of truth, and archive failures never block the UI.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/sijms/go-ora/v2"

	"landmarket/internal/listing"
)

// dsn builds a properly encoded connection string for Oracle Autonomous Database
func dsn(username, password, host, port, service string, walletLocation string) string {
	if walletLocation != "" {
		// Use wallet-based mTLS connection
		return fmt.Sprintf(
			"oracle://%s:%s@%s:%s/%s?ssl=true&wallet_location=%s",
			username, password, host, port, service, url.PathEscape(walletLocation))
	}

	// Fallback to standard connection without wallet
	return (&url.URL{
		Scheme:   "oracle",
		User:     url.UserPassword(username, password), // escapes automatically
		Host:     host + ":" + port,
		Path:     "/" + service, // keep full service name
		RawQuery: "ssl=true",    // ADB requires TCPS on 1522
	}).String()
}

// Config holds database connection configuration.
type Config struct {
	Host           string
	Port           string
	Service        string
	Username       string
	Password       string
	WalletLocation string
}

// Archive holds the database connection and configuration.
type Archive struct {
	db     *sql.DB
	config Config
}

// New opens and verifies the archive connection.
func New(config Config) (*Archive, error) {
	connStr := dsn(config.Username, config.Password, config.Host, config.Port, config.Service, config.WalletLocation)

	db, err := sql.Open("oracle", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Archive{
		db:     db,
		config: config,
	}, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// SaveListing inserts a single listing into the archive table.
func (a *Archive) SaveListing(l listing.Listing) error {
	query := `
		INSERT INTO LAND_LISTINGS
			(ID, TITLE, DESCRIPTION, PRICE, AREA_ACRES, LATITUDE, LONGITUDE)
		VALUES
			(:1, :2, :3, :4, :5, :6, :7)
	`
	_, err := a.db.Exec(query,
		l.ID, l.Title, l.Description, l.Price, l.Area, l.Location.Lat, l.Location.Lng)
	if err != nil {
		return fmt.Errorf("failed to insert listing %s: %w", l.ID, err)
	}
	return nil
}

// SaveSnapshot replaces the archived collection with the given sequence: a
// full-snapshot push matching the store's own persistence model.
func (a *Archive) SaveSnapshot(listings []listing.Listing) error {
	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM LAND_LISTINGS`); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear archive table: %w", err)
	}

	insert := `
		INSERT INTO LAND_LISTINGS
			(ID, TITLE, DESCRIPTION, PRICE, AREA_ACRES, LATITUDE, LONGITUDE)
		VALUES
			(:1, :2, :3, :4, :5, :6, :7)
	`
	for _, l := range listings {
		if _, err := tx.Exec(insert,
			l.ID, l.Title, l.Description, l.Price, l.Area, l.Location.Lat, l.Location.Lng); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to archive listing %s: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// QueryListings reads the archived collection back, ordered by ID (creation
// order).
func (a *Archive) QueryListings() ([]listing.Listing, error) {
	query := `
		SELECT ID, TITLE, DESCRIPTION, PRICE, AREA_ACRES, LATITUDE, LONGITUDE
		FROM LAND_LISTINGS
		ORDER BY ID
	`
	rows, err := a.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	var listings []listing.Listing
	for rows.Next() {
		var l listing.Listing
		err := rows.Scan(&l.ID, &l.Title, &l.Description, &l.Price, &l.Area,
			&l.Location.Lat, &l.Location.Lng)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
