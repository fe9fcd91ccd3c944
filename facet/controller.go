package facet

import (
	"fmt"

	"crowd-status/models/venue"
)

// Controller owns one FilterState and is its only writer. Setting a region
// clears prefecture and city; setting a prefecture clears city. No other
// setter touches another dimension.
//
// A Controller is not safe for concurrent use.
type Controller struct {
	state FilterState
}

func NewController() *Controller {
	return &Controller{state: NewFilterState()}
}

// State returns a copy of the current state.
func (c *Controller) State() FilterState {
	return c.state.Clone()
}

func (c *Controller) SetSearch(q string) {
	c.state.Search = q
}

func (c *Controller) SetRegion(values []string) {
	c.state.Region = normalizeSelection(values)
	c.state.Prefecture = nil
	c.state.City = nil
}

func (c *Controller) SetPrefecture(values []string) {
	c.state.Prefecture = normalizeSelection(values)
	c.state.City = nil
}

func (c *Controller) SetCity(values []string) {
	c.state.City = normalizeSelection(values)
}

func (c *Controller) SetStoreName(values []string) {
	c.state.StoreName = normalizeSelection(values)
}

func (c *Controller) SetDate(values []string) {
	c.state.Date = normalizeSelection(values)
}

func (c *Controller) SetSport(values []string) {
	c.state.Sport = normalizeSelection(values)
}

func (c *Controller) SetMatch(values []string) {
	c.state.Match = normalizeSelection(values)
}

func (c *Controller) SetTableStatus(sel StatusSelection) {
	c.state.TableStatus = sel
}

func (c *Controller) SetStandingStatus(sel StatusSelection) {
	c.state.StandingStatus = sel
}

// ToggleTableStatus selects st, or returns to ALL when st is already selected.
func (c *Controller) ToggleTableStatus(st ReservationStatus) {
	c.state.TableStatus = toggle(c.state.TableStatus, st)
}

// ToggleStandingStatus selects st, or returns to ALL when st is already selected.
func (c *Controller) ToggleStandingStatus(st ReservationStatus) {
	c.state.StandingStatus = toggle(c.state.StandingStatus, st)
}

// SetLanguage switches the display language without touching any selection.
func (c *Controller) SetLanguage(lang venue.Language) {
	c.state.Language = lang
}

// Reset returns every dimension to its unconstrained value. The display
// language is kept.
func (c *Controller) Reset() {
	lang := c.state.Language
	c.state = NewFilterState()
	if lang != "" {
		c.state.Language = lang
	}
}

// Set writes values to d by name, applying the same cascade as the typed
// setters. Status dimensions take at most one value.
func (c *Controller) Set(d Dimension, values []string) error {
	if d.IsStatus() {
		if len(values) > 1 {
			return fmt.Errorf("%w: %s accepts a single value", ErrInvalidStatus, d)
		}
		raw := ""
		if len(values) == 1 {
			raw = values[0]
		}
		sel, err := ParseStatusSelection(raw)
		if err != nil {
			return err
		}
		if d == DimensionTableStatus {
			c.SetTableStatus(sel)
		} else {
			c.SetStandingStatus(sel)
		}
		return nil
	}

	switch d {
	case DimensionSearch:
		q := ""
		if len(values) > 0 {
			q = values[0]
		}
		c.SetSearch(q)
	case DimensionRegion:
		c.SetRegion(values)
	case DimensionPrefecture:
		c.SetPrefecture(values)
	case DimensionCity:
		c.SetCity(values)
	case DimensionStoreName:
		c.SetStoreName(values)
	case DimensionDate:
		c.SetDate(values)
	case DimensionSport:
		c.SetSport(values)
	case DimensionMatch:
		c.SetMatch(values)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDimension, d)
	}
	return nil
}

// Toggle flips a status selection by dimension name.
func (c *Controller) Toggle(d Dimension, value string) error {
	if !d.IsStatus() {
		return fmt.Errorf("%w: %s is not a status dimension", ErrUnknownDimension, d)
	}
	st, err := ParseStatus(value)
	if err != nil {
		return err
	}
	if d == DimensionTableStatus {
		c.ToggleTableStatus(st)
	} else {
		c.ToggleStandingStatus(st)
	}
	return nil
}

func toggle(cur StatusSelection, st ReservationStatus) StatusSelection {
	if cur == StatusSelection(st) {
		return StatusAll
	}
	return StatusSelection(st)
}

// normalizeSelection drops blanks and duplicates, keeping first-seen order.
// A selection containing AllSentinel means "no constraint".
func normalizeSelection(values []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == AllSentinel {
			return nil
		}
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
