package httpapi

import (
	"context"
	"time"

	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/formation"
	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/lineup"
	"github.com/Pranay-Prat/football-lineup-maker/internal/domain/theme"
	"github.com/Pranay-Prat/football-lineup-maker/internal/share"
	"github.com/Pranay-Prat/football-lineup-maker/internal/usecase"
)

type playerPositionDTO struct {
	ID     int     `json:"id" validate:"gte=1"`
	Top    float64 `json:"top" validate:"gte=0,lte=100"`
	Left   float64 `json:"left" validate:"gte=0,lte=100"`
	Role   string  `json:"role" validate:"required,max=8"`
	Name   string  `json:"name,omitempty" validate:"max=64"`
	Number *int    `json:"number,omitempty" validate:"omitempty,gte=0,lte=999"`
}

type pitchColorDTO struct {
	Label        string `json:"label" validate:"required,max=64"`
	Value        string `json:"value" validate:"required,max=256"`
	PreviewClass string `json:"previewClass" validate:"max=256"`
}

type shareableLineupDTO struct {
	TeamName      string              `json:"teamName" validate:"max=100"`
	FormationName string              `json:"formationName" validate:"max=20"`
	Players       []playerPositionDTO `json:"players" validate:"required,max=11,dive"`
	PlayerColor   string              `json:"playerColor" validate:"required,max=64"`
	PitchColor    pitchColorDTO       `json:"pitchColor"`
}

type shareLinkDTO struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

type saveLineupRequest struct {
	Title         string              `json:"title" validate:"required,max=120"`
	Name          string              `json:"name" validate:"required,max=100"`
	FormationName string              `json:"formationName" validate:"max=20"`
	Players       []playerPositionDTO `json:"players" validate:"required,max=11,dive"`
	Background    string              `json:"background" validate:"required,max=256"`
	PlayerColor   string              `json:"playerColor" validate:"max=64"`
	IsPublic      bool                `json:"isPublic"`
}

type lineupDTO struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Name          string              `json:"name"`
	FormationName string              `json:"formationName"`
	Players       []playerPositionDTO `json:"players"`
	Background    string              `json:"background"`
	PlayerColor   string              `json:"playerColor"`
	IsPublic      bool                `json:"isPublic"`
	ShareURL      string              `json:"shareUrl,omitempty"`
	CreatedAt     string              `json:"createdAt"`
	UpdatedAt     string              `json:"updatedAt"`
}

type formationPositionDTO struct {
	ID   int     `json:"id"`
	Top  float64 `json:"top"`
	Left float64 `json:"left"`
	Role string  `json:"role"`
}

type formationDTO struct {
	Name      string                 `json:"name"`
	Positions []formationPositionDTO `json:"positions"`
}

type playerColorDTO struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Hex   string `json:"hex"`
}

type themesDTO struct {
	PlayerColors       []playerColorDTO `json:"playerColors"`
	PitchColors        []pitchColorDTO  `json:"pitchColors"`
	DefaultPlayerColor string           `json:"defaultPlayerColor"`
	DefaultPitchColor  string           `json:"defaultPitchColor"`
}

type accountWebhookEmailDTO struct {
	EmailAddress string `json:"email_address"`
}

type accountWebhookDataDTO struct {
	ID             string                   `json:"id"`
	EmailAddresses []accountWebhookEmailDTO `json:"email_addresses"`
	FirstName      *string                  `json:"first_name"`
	LastName       *string                  `json:"last_name"`
	ImageURL       string                   `json:"image_url"`
}

type accountWebhookRequest struct {
	Type string                `json:"type" validate:"required"`
	Data accountWebhookDataDTO `json:"data"`
}

type accountWebhookResponseDTO struct {
	Outcome string `json:"outcome"`
}

func playersFromDTO(ctx context.Context, items []playerPositionDTO) []share.PlayerShareEntry {
	_ = ctx

	out := make([]share.PlayerShareEntry, 0, len(items))
	for _, item := range items {
		p := share.PlayerShareEntry{
			ID:   item.ID,
			Top:  item.Top,
			Left: item.Left,
			Role: item.Role,
			Name: item.Name,
		}
		if item.Number != nil {
			p.Number = share.IntPtr(*item.Number)
		}
		out = append(out, p)
	}
	return out
}

func playersToDTO(ctx context.Context, items []share.PlayerShareEntry) []playerPositionDTO {
	_ = ctx

	out := make([]playerPositionDTO, 0, len(items))
	for _, item := range items {
		p := playerPositionDTO{
			ID:   item.ID,
			Top:  item.Top,
			Left: item.Left,
			Role: item.Role,
			Name: item.Name,
		}
		if item.Number != nil {
			p.Number = share.IntPtr(*item.Number)
		}
		out = append(out, p)
	}
	return out
}

func shareableFromDTO(ctx context.Context, req shareableLineupDTO) share.ShareableLineupData {
	return share.ShareableLineupData{
		TeamName:      req.TeamName,
		FormationName: req.FormationName,
		Players:       playersFromDTO(ctx, req.Players),
		PlayerColor:   req.PlayerColor,
		PitchColor: share.PitchColor{
			Label:        req.PitchColor.Label,
			Value:        req.PitchColor.Value,
			PreviewClass: req.PitchColor.PreviewClass,
		},
	}
}

func shareableToDTO(ctx context.Context, data share.ShareableLineupData) shareableLineupDTO {
	return shareableLineupDTO{
		TeamName:      data.TeamName,
		FormationName: data.FormationName,
		Players:       playersToDTO(ctx, data.Players),
		PlayerColor:   data.PlayerColor,
		PitchColor:    pitchColorToDTO(data.PitchColor),
	}
}

func pitchColorToDTO(v share.PitchColor) pitchColorDTO {
	return pitchColorDTO{Label: v.Label, Value: v.Value, PreviewClass: v.PreviewClass}
}

func shareLinkToDTO(v usecase.ShareLink) shareLinkDTO {
	return shareLinkDTO{Token: v.Token, URL: v.URL}
}

func lineupToDTO(ctx context.Context, item lineup.Lineup, shareURL string) lineupDTO {
	return lineupDTO{
		ID:            item.ID,
		Title:         item.Title,
		Name:          item.Name,
		FormationName: item.FormationName,
		Players:       playersToDTO(ctx, item.Players),
		Background:    item.Background,
		PlayerColor:   item.PlayerColor,
		IsPublic:      item.IsPublic,
		ShareURL:      shareURL,
		CreatedAt:     item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func formationToDTO(f formation.Formation) formationDTO {
	positions := make([]formationPositionDTO, 0, len(f.Positions))
	for _, p := range f.Positions {
		positions = append(positions, formationPositionDTO{ID: p.ID, Top: p.Top, Left: p.Left, Role: p.Role})
	}
	return formationDTO{Name: f.Name, Positions: positions}
}

func themesToDTO() themesDTO {
	playerColors := theme.PlayerColors()
	pitchColors := theme.PitchColors()

	out := themesDTO{
		PlayerColors:       make([]playerColorDTO, 0, len(playerColors)),
		PitchColors:        make([]pitchColorDTO, 0, len(pitchColors)),
		DefaultPlayerColor: theme.DefaultPlayerColor().Hex,
		DefaultPitchColor:  theme.DefaultPitchColor().Label,
	}
	for _, c := range playerColors {
		out.PlayerColors = append(out.PlayerColors, playerColorDTO{Label: c.Label, Value: c.Value, Hex: c.Hex})
	}
	for _, c := range pitchColors {
		out.PitchColors = append(out.PitchColors, pitchColorToDTO(c))
	}
	return out
}

func accountEventFromDTO(req accountWebhookRequest) usecase.AccountEvent {
	emails := make([]string, 0, len(req.Data.EmailAddresses))
	for _, e := range req.Data.EmailAddresses {
		emails = append(emails, e.EmailAddress)
	}

	event := usecase.AccountEvent{
		Type:       req.Type,
		ExternalID: req.Data.ID,
		Emails:     emails,
		ImageURL:   req.Data.ImageURL,
	}
	if req.Data.FirstName != nil {
		event.FirstName = *req.Data.FirstName
	}
	if req.Data.LastName != nil {
		event.LastName = *req.Data.LastName
	}
	return event
}
