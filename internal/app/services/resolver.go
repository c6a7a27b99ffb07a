package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/yigit/timetabler/internal/app/models"
	"github.com/yigit/timetabler/internal/pkg/apperrors"
)

// Resolver maps natural keys (module code, venue, lecturer and programme
// names) to row IDs for one import run, creating rows that do not exist yet.
// Lookups are cached for the lifetime of the run. A Resolver is not safe for
// concurrent use.
type Resolver struct {
	stores     ReferenceStores
	modules    map[string]int64
	venues     map[string]int64
	lecturers  map[string]int64
	programmes map[string]int64
}

// NewResolver returns a Resolver with empty caches.
func NewResolver(stores ReferenceStores) *Resolver {
	return &Resolver{
		stores:     stores,
		modules:    make(map[string]int64),
		venues:     make(map[string]int64),
		lecturers:  make(map[string]int64),
		programmes: make(map[string]int64),
	}
}

// Module resolves a module code. A new module is named after its code.
func (r *Resolver) Module(ctx context.Context, code string) (int64, error) {
	return resolve(ctx, r.modules, code,
		func(ctx context.Context) (int64, error) {
			m, err := r.stores.Modules.GetByCode(ctx, code)
			if err != nil {
				return 0, err
			}
			return m.ID, nil
		},
		func(ctx context.Context) (int64, error) {
			m := &models.Module{Code: code, Name: code}
			if err := r.stores.Modules.Create(ctx, m); err != nil {
				return 0, err
			}
			return m.ID, nil
		})
}

// Venue resolves a venue name; an empty name resolves to nil.
func (r *Resolver) Venue(ctx context.Context, name string) (*int64, error) {
	if name == "" {
		return nil, nil
	}
	id, err := resolve(ctx, r.venues, name,
		func(ctx context.Context) (int64, error) {
			v, err := r.stores.Venues.GetByName(ctx, name)
			if err != nil {
				return 0, err
			}
			return v.ID, nil
		},
		func(ctx context.Context) (int64, error) {
			v := &models.Venue{Name: name}
			if err := r.stores.Venues.Create(ctx, v); err != nil {
				return 0, err
			}
			return v.ID, nil
		})
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// Lecturer resolves a lecturer name; an empty name resolves to nil.
func (r *Resolver) Lecturer(ctx context.Context, name string) (*int64, error) {
	if name == "" {
		return nil, nil
	}
	id, err := resolve(ctx, r.lecturers, name,
		func(ctx context.Context) (int64, error) {
			l, err := r.stores.Lecturers.GetByName(ctx, name)
			if err != nil {
				return 0, err
			}
			return l.ID, nil
		},
		func(ctx context.Context) (int64, error) {
			l := &models.Lecturer{Name: name}
			if err := r.stores.Lecturers.Create(ctx, l); err != nil {
				return 0, err
			}
			return l.ID, nil
		})
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// Programme resolves a programme name; an empty name resolves to nil. A new
// programme gets a code derived from its name.
func (r *Resolver) Programme(ctx context.Context, name string) (*int64, error) {
	if name == "" {
		return nil, nil
	}
	id, err := resolve(ctx, r.programmes, name,
		func(ctx context.Context) (int64, error) {
			p, err := r.stores.Programmes.GetByName(ctx, name)
			if err != nil {
				return 0, err
			}
			return p.ID, nil
		},
		func(ctx context.Context) (int64, error) {
			p := &models.Programme{Name: name, Code: ProgrammeCode(name)}
			if err := r.stores.Programmes.Create(ctx, p); err != nil {
				return 0, err
			}
			return p.ID, nil
		})
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// resolve consults the cache, then the store, then creates. When another
// writer creates the same key between lookup and insert, the lookup is
// retried once.
func resolve(
	ctx context.Context,
	cache map[string]int64,
	key string,
	lookup func(context.Context) (int64, error),
	create func(context.Context) (int64, error),
) (int64, error) {
	if id, ok := cache[key]; ok {
		return id, nil
	}

	id, err := lookup(ctx)
	if err == nil {
		cache[key] = id
		return id, nil
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return 0, fmt.Errorf("error looking up %q: %w", key, err)
	}

	id, err = create(ctx)
	if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		id, err = lookup(ctx)
	}
	if err != nil {
		return 0, fmt.Errorf("error creating %q: %w", key, err)
	}
	cache[key] = id
	return id, nil
}

// ProgrammeCode abbreviates a programme name to the upper-cased initials of
// its words, keeping numeric words whole: "Bachelor of Commerce 2" is "BOC2".
func ProgrammeCode(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if word == "" {
			continue
		}
		first := []rune(word)[0]
		switch {
		case unicode.IsLetter(first):
			b.WriteRune(unicode.ToUpper(first))
		case isDigits(word):
			b.WriteString(word)
		}
	}
	return b.String()
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
