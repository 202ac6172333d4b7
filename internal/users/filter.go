package users

import (
	"github.com/Alp4ka/rankpager"
)

// FilterKind is the cursor discriminant of Filter. Bump it when the shape of
// Filter changes so that older tokens stop being honored.
const FilterKind = "users.v1"

// DefaultSort is applied when a request does not specify any ordering.
var DefaultSort = rankpager.Orderings{
	{Column: "surname", Direction: rankpager.DirectionASC},
	{Column: "name", Direction: rankpager.DirectionASC},
}

// Filter selects and orders users. It is embedded into every cursor minted
// for the users endpoint.
type Filter struct {
	Name    string              `json:"name,omitempty"`
	Surname string              `json:"surname,omitempty"`
	Email   string              `json:"email,omitempty"`
	Sort    rankpager.Orderings `json:"sort"`
}

// NewFilter returns a filter with the default ordering.
func NewFilter() Filter {
	return Filter{Sort: DefaultSort}
}

// FilterKind - implements rankpager.FilterContext.
func (f Filter) FilterKind() string {
	return FilterKind
}

// Equal - implements rankpager.FilterContext.
func (f Filter) Equal(other Filter) bool {
	return f.Name == other.Name &&
		f.Surname == other.Surname &&
		f.Email == other.Email &&
		f.Sort.Equal(other.Sort)
}

// Conditions - implements rankpager.FilterContext.
func (f Filter) Conditions() map[string]any {
	conditions := make(map[string]any, 3)
	if f.Name != "" {
		conditions["name"] = f.Name
	}
	if f.Surname != "" {
		conditions["surname"] = f.Surname
	}
	if f.Email != "" {
		conditions["email"] = f.Email
	}

	return conditions
}

// Orderings - implements rankpager.FilterContext.
func (f Filter) Orderings() rankpager.Orderings {
	if len(f.Sort) == 0 {
		return DefaultSort
	}

	return f.Sort
}

var _ rankpager.FilterContext[Filter] = Filter{}
