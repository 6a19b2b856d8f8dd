package db

import (
	"strings"
	"testing"
)

func TestBuildListFilterEmpty(t *testing.T) {
	where, args := buildListFilter(ListParams{})
	if where != "" || args != nil {
		t.Errorf("empty params must produce no filter, got %q %v", where, args)
	}
}

func TestBuildListFilterNumbersPlaceholders(t *testing.T) {
	where, args := buildListFilter(ListParams{
		NoticeType:    "can-standard",
		BuyerCity:     "Kassel",
		IssueDateFrom: "2024-12-01",
	})

	if !strings.HasPrefix(where, "WHERE ") {
		t.Fatalf("clause = %q", where)
	}
	for _, token := range []string{
		"notice_type = $1",
		"buyer_city = $2",
		"issue_date >= $3",
	} {
		if !strings.Contains(where, token) {
			t.Errorf("clause missing %q: %s", token, where)
		}
	}
	if len(args) != 3 {
		t.Errorf("args = %v", args)
	}
	if args[0] != "can-standard" || args[1] != "Kassel" || args[2] != "2024-12-01" {
		t.Errorf("args out of order: %v", args)
	}
}

func TestBuildListFilterQueryMatchesNameOrID(t *testing.T) {
	where, args := buildListFilter(ListParams{Query: "Stadt"})

	if !strings.Contains(where, "buyer_name ILIKE '%' || $1 || '%'") {
		t.Errorf("clause missing name match: %s", where)
	}
	if !strings.Contains(where, "notice_id = $1") {
		t.Errorf("clause missing id match: %s", where)
	}
	if len(args) != 1 || args[0] != "Stadt" {
		t.Errorf("args = %v", args)
	}
}
