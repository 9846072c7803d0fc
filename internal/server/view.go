package server

import (
	"github.com/ginjaninja78/graduate-roster/internal/i18n"
	"github.com/ginjaninja78/graduate-roster/internal/types"
)

// rosterView is the body of GET /graduates.
type rosterView struct {
	Locale string      `json:"locale"`
	Title  string      `json:"title"`
	Empty  string      `json:"empty,omitempty"`
	Groups []groupView `json:"groups"`
}

type groupView struct {
	Key   string `json:"key"`
	Title string `json:"title"`

	// Collapsible is true only when the roster has more than one group.
	Collapsible bool       `json:"collapsible"`
	Items       []itemView `json:"items"`
}

type itemView struct {
	DisplayName string `json:"displayName"`
	DateLabel   string `json:"dateLabel"`
	Image       string `json:"img,omitempty"`
}

func newRosterView(loc i18n.Localizer, groups []types.Group) rosterView {
	view := rosterView{
		Locale: loc.Locale().String(),
		Title:  loc.T("graduates.title"),
		Groups: make([]groupView, 0, len(groups)),
	}
	if len(groups) == 0 {
		view.Empty = loc.T("graduates.empty")
	}

	collapsible := len(groups) > 1
	for _, g := range groups {
		gv := groupView{
			Key:         g.Key,
			Title:       g.Title,
			Collapsible: collapsible,
			Items:       make([]itemView, 0, len(g.Items)),
		}
		for _, item := range g.Items {
			iv := itemView{
				DisplayName: item.DisplayName(loc.Locale().String()),
				Image:       item.ImageReference,
			}
			if item.CertificationDate != nil {
				iv.DateLabel = loc.Date(*item.CertificationDate)
			}
			gv.Items = append(gv.Items, iv)
		}
		view.Groups = append(view.Groups, gv)
	}
	return view
}
