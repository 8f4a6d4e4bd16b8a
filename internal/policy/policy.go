// Package policy describes, per endpoint group, who may call it, which rows it
// exposes and how it paginates. Values are plain data so deployments can pick
// between the historical board-listing behaviours without code changes.
package policy

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Permission string

const (
	AllowAny      Permission = "allow_any"
	Authenticated Permission = "authenticated"
	AdminOnly     Permission = "admin_only"
)

func (p Permission) Valid() bool {
	switch p {
	case AllowAny, Authenticated, AdminOnly:
		return true
	}
	return false
}

// BoardScope selects which boards a listing returns.
type BoardScope string

const (
	ScopeOwner BoardScope = "owner"
	ScopeAll   BoardScope = "all"
)

func (s BoardScope) Valid() bool {
	return s == ScopeOwner || s == ScopeAll
}

type Pagination struct {
	Enabled            bool   `yaml:"enabled"`
	PageSize           int    `yaml:"page_size"`
	PageSizeQueryParam string `yaml:"page_size_query_param"`
	MaxPageSize        int    `yaml:"max_page_size"`
}

type Endpoint struct {
	Permission Permission `yaml:"permission"`
	Pagination Pagination `yaml:"pagination"`
}

type Boards struct {
	Endpoint       `yaml:",inline"`
	Scope          BoardScope `yaml:"scope"`
	FilterFields   []string   `yaml:"filter_fields"`
	OrderingFields []string   `yaml:"ordering_fields"`
}

type Policy struct {
	Boards Boards   `yaml:"boards"`
	Items  Endpoint `yaml:"items"`
	Users  Endpoint `yaml:"users"`
}

func SmallResultsSet() Pagination {
	return Pagination{
		Enabled:            true,
		PageSize:           10,
		PageSizeQueryParam: "page_size",
		MaxPageSize:        10000,
	}
}

// Default returns the behaviour of the most recent deployment: anyone may list
// boards but only sees their own, items are open, users are admin only.
func Default() *Policy {
	return &Policy{
		Boards: Boards{
			Endpoint: Endpoint{
				Permission: AllowAny,
				Pagination: SmallResultsSet(),
			},
			Scope:          ScopeOwner,
			FilterFields:   []string{"name"},
			OrderingFields: []string{"id"},
		},
		Items: Endpoint{
			Permission: AllowAny,
			Pagination: SmallResultsSet(),
		},
		Users: Endpoint{
			Permission: AdminOnly,
		},
	}
}

// Load reads a YAML policy file on top of Default. An empty path yields Default.
func Load(path string) (*Policy, error) {
	p := Default()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse policy file: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Policy) Validate() error {
	var errs []error
	check := func(name string, e Endpoint) {
		if !e.Permission.Valid() {
			errs = append(errs, fmt.Errorf("%s: unknown permission %q", name, e.Permission))
		}
		if e.Pagination.Enabled {
			if e.Pagination.PageSize <= 0 {
				errs = append(errs, fmt.Errorf("%s: page_size must be positive", name))
			}
			if e.Pagination.MaxPageSize > 0 && e.Pagination.MaxPageSize < e.Pagination.PageSize {
				errs = append(errs, fmt.Errorf("%s: max_page_size is below page_size", name))
			}
		}
	}

	check("boards", p.Boards.Endpoint)
	check("items", p.Items)
	check("users", p.Users)
	if !p.Boards.Scope.Valid() {
		errs = append(errs, fmt.Errorf("boards: unknown scope %q", p.Boards.Scope))
	}
	return errors.Join(errs...)
}

func (b Boards) Filterable(field string) bool {
	return contains(b.FilterFields, field)
}

func (b Boards) Orderable(field string) bool {
	return contains(b.OrderingFields, field)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
