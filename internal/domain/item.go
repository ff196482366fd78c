// Package domain defines the domain models and repository contracts.
package domain

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// ItemKind classifies a content item.
type ItemKind string

const (
	ItemKindTask ItemKind = "task"
	ItemKindNote ItemKind = "note"
	ItemKindList ItemKind = "list"
)

// Draft field names. The draft layer works on a flat field map so the
// coordinator stays independent of the item shape.
const (
	FieldTitle = "title"
	FieldBody  = "body"
	FieldDue   = "due"
	FieldTags  = "tags"
	FieldDone  = "done"
)

// Item is a captured content item (task, note or list entry) inside a space.
type Item struct {
	ID        string
	SpaceID   string
	Kind      ItemKind
	Title     string
	Body      string
	Due       int64 // unix seconds, 0 means no due date
	Tags      []string
	Done      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Fields returns the editable fields of the item as a field map.
func (i *Item) Fields() map[string]string {
	return map[string]string{
		FieldTitle: i.Title,
		FieldBody:  i.Body,
		FieldDue:   strconv.FormatInt(i.Due, 10),
		FieldTags:  strings.Join(i.Tags, ","),
		FieldDone:  strconv.FormatBool(i.Done),
	}
}

// ApplyFields writes a field map back onto the item. Unknown keys are
// ignored so older clients can send partial maps.
func (i *Item) ApplyFields(fields map[string]string) {
	if v, ok := fields[FieldTitle]; ok {
		i.Title = v
	}
	if v, ok := fields[FieldBody]; ok {
		i.Body = v
	}
	if v, ok := fields[FieldDue]; ok {
		if due, err := strconv.ParseInt(v, 10, 64); err == nil {
			i.Due = due
		}
	}
	if v, ok := fields[FieldTags]; ok {
		if v == "" {
			i.Tags = nil
		} else {
			i.Tags = strings.Split(v, ",")
		}
	}
	if v, ok := fields[FieldDone]; ok {
		if done, err := strconv.ParseBool(v); err == nil {
			i.Done = done
		}
	}
}

// CloneFields returns a copy of a field map.
func CloneFields(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// FieldsEqual reports whether two field maps hold the same entries.
func FieldsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

// FieldNames returns the sorted key set of a field map.
func FieldNames(fields map[string]string) []string {
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Space groups items and carries the per-space aggregate item count.
type Space struct {
	ID        string
	Name      string
	ItemCount int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
