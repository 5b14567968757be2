package nlp

import (
	"reflect"
	"testing"

	"go-textlens/types"
)

func TestLocateEntities(t *testing.T) {
	text := "Paris loves Paris. Zoë met Zoë in Paris."

	got := locateEntities(text, []foundEntity{
		{Text: "Paris", Label: "gpe"},
		{Text: "Paris", Label: "GPE"},
		{Text: "Zoë", Label: "PERSON"},
		{Text: " Zoë ", Label: "PERSON"},
		{Text: "Paris", Label: "GPE"},
		{Text: "Berlin", Label: "GPE"},
		{Text: "", Label: "GPE"},
	})

	want := []types.Entity{
		{Text: "Paris", Label: "GPE", Start: 0, End: 5},
		{Text: "Paris", Label: "GPE", Start: 12, End: 17},
		{Text: "Zoë", Label: "PERSON", Start: 19, End: 22},
		{Text: "Zoë", Label: "PERSON", Start: 27, End: 30},
		{Text: "Paris", Label: "GPE", Start: 34, End: 39},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v\nwant %+v", got, want)
	}
}

func TestLocateEntitiesOutOfOrder(t *testing.T) {
	got := locateEntities("Tim Cook runs Apple", []foundEntity{
		{Text: "Apple", Label: "ORG"},
		{Text: "Tim Cook", Label: "PERSON"},
	})

	want := []types.Entity{
		{Text: "Apple", Label: "ORG", Start: 14, End: 19},
		{Text: "Tim Cook", Label: "PERSON", Start: 0, End: 8},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v\nwant %+v", got, want)
	}
}

func TestLocateEntitiesNoMatches(t *testing.T) {
	got := locateEntities("hello", nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}
