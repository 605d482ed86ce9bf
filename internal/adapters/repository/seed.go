package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/okian/evstatus/internal/domain/model"
)

// seedEvent mirrors one entry of the seed file:
//
//	events:
//	  - group_id: "team-a"
//	    end_date: "2026-10-16T18:00:00Z"
//	    review_duration_in_hours: 24
type seedEvent struct {
	GroupID               string  `koanf:"group_id"`
	EndDate               any     `koanf:"end_date"`
	ReviewDurationInHours float64 `koanf:"review_duration_in_hours"`
}

// LoadSeed reads the YAML file at path and saves each event into store in
// file order. It returns the number of events saved.
func LoadSeed(ctx context.Context, store Store, path string) (int, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}

	var seeds []seedEvent
	if err := k.UnmarshalWithConf("events", &seeds, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}

	for i, se := range seeds {
		end, err := parseSeedTime(se.EndDate)
		if err != nil {
			return i, fmt.Errorf("%w: events[%d]: %w", ErrInvalidSeed, i, err)
		}
		if _, err := store.Save(ctx, model.LastEvent{
			GroupID:               se.GroupID,
			EndDate:               end,
			ReviewDurationInHours: se.ReviewDurationInHours,
		}); err != nil {
			return i, fmt.Errorf("%w: events[%d]: %w", ErrInvalidSeed, i, err)
		}
	}
	return len(seeds), nil
}

// parseSeedTime accepts RFC3339 strings as well as timestamps already
// decoded by the YAML parser.
func parseSeedTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return time.Time{}, fmt.Errorf("end_date must be RFC3339: %w", err)
		}
		return parsed, nil
	case nil:
		return time.Time{}, errors.New("missing end_date")
	default:
		return time.Time{}, fmt.Errorf("unsupported end_date type %T", v)
	}
}
