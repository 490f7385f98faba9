package theme

import (
	"strings"

	"github.com/Pranay-Prat/football-lineup-maker/internal/share"
)

type RoleCategory string

const (
	CategoryGoalkeeper RoleCategory = "GK"
	CategoryDefender   RoleCategory = "DEF"
	CategoryMidfielder RoleCategory = "MID"
	CategoryForward    RoleCategory = "FWD"
)

var roleCategories = map[string]RoleCategory{
	"GK":  CategoryGoalkeeper,
	"CB":  CategoryDefender,
	"LCB": CategoryDefender,
	"RCB": CategoryDefender,
	"LB":  CategoryDefender,
	"RB":  CategoryDefender,
	"LWB": CategoryDefender,
	"RWB": CategoryDefender,
	"ST":  CategoryForward,
	"CF":  CategoryForward,
	"LW":  CategoryForward,
	"RW":  CategoryForward,
	"SS":  CategoryForward,
}

// CategoryOf maps a pitch role to its line. Unknown roles count as midfield.
func CategoryOf(role string) RoleCategory {
	if c, ok := roleCategories[strings.ToUpper(strings.TrimSpace(role))]; ok {
		return c
	}
	return CategoryMidfielder
}

type CategoryCount struct {
	GK  int `json:"gk"`
	DEF int `json:"def"`
	MID int `json:"mid"`
	FWD int `json:"fwd"`
}

func (c CategoryCount) Total() int {
	return c.GK + c.DEF + c.MID + c.FWD
}

func CountByCategory(players []share.PlayerShareEntry) CategoryCount {
	var out CategoryCount
	for _, p := range players {
		switch CategoryOf(p.Role) {
		case CategoryGoalkeeper:
			out.GK++
		case CategoryDefender:
			out.DEF++
		case CategoryForward:
			out.FWD++
		default:
			out.MID++
		}
	}
	return out
}
