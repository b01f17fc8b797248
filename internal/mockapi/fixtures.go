// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mockapi

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Row is one backend record, kept loose so the JSON mirrors what the PHP
// backend emits.
type Row = map[string]any

// User is a login account.
type User struct {
	Username     string   `yaml:"username"`
	Password     string   `yaml:"password,omitempty"`
	PasswordHash string   `yaml:"password_hash,omitempty"`
	ID           int      `yaml:"id"`
	Active       bool     `yaml:"active"`
	Resources    []string `yaml:"resources"`
	Ports        []string `yaml:"ports"`
}

// Fixtures is the data set the mock serves.
type Fixtures struct {
	Version    string        `yaml:"version"`
	DatabaseUp bool          `yaml:"database_up"`
	SessionTTL time.Duration `yaml:"session_ttl"`

	Users                        []User              `yaml:"users"`
	Clients                      []Row               `yaml:"clients"`
	Representatives              []Row               `yaml:"representatives"`
	Products                     []Row               `yaml:"products"`
	Colors                       []Row               `yaml:"colors"`
	Tissues                      []Row               `yaml:"tissues"`
	Collections                  []Row               `yaml:"collections"`
	Sizes                        Row                 `yaml:"sizes"`
	PaymentMethods               []Row               `yaml:"payment_methods"`
	RepresentativePaymentMethods []Row               `yaml:"representative_payment_methods"`
	Carriers                     []Row               `yaml:"carriers"`
	Prices                       []string            `yaml:"prices"`
	PriceReferences              []Row               `yaml:"price_references"`
	RepresentativePrices         map[string][]string `yaml:"representative_prices"`
}

// DefaultSessionTTL applies when the fixtures leave session_ttl unset.
const DefaultSessionTTL = 30 * time.Minute

// ErrNoUsers is returned for fixtures without a single account.
var ErrNoUsers = errors.New("fixtures define no users")

// DefaultFixtures returns the embedded development data set.
func DefaultFixtures() (*Fixtures, error) {
	return ParseFixtures(defaultFixtures)
}

// LoadFixtures reads fixtures from a YAML file.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return ParseFixtures(data)
}

// ParseFixtures decodes YAML fixtures and hashes plain passwords.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	if len(f.Users) == 0 {
		return nil, ErrNoUsers
	}
	if f.SessionTTL <= 0 {
		f.SessionTTL = DefaultSessionTTL
	}
	for i := range f.Users {
		u := &f.Users[i]
		if u.PasswordHash != "" {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.MinCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", u.Username, err)
		}
		u.PasswordHash = string(hash)
		u.Password = ""
	}
	return &f, nil
}

func (f *Fixtures) user(username string) (*User, bool) {
	for i := range f.Users {
		if f.Users[i].Username == username {
			return &f.Users[i], true
		}
	}
	return nil, false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
