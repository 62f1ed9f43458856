package views

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leavedesk/leavedesk/internal/apperrors"
	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/core/ports"
)

// PolicySettingsView backs the HR policy screen. Edit mode works on a
// draft copy; cancelling restores the last fetched snapshot untouched.
type PolicySettingsView struct {
	gateway  ports.PolicyGateway
	notifier ports.Notifier
	logger   *slog.Logger

	settings  *domain.PolicySettings
	draft     domain.PolicySettings
	editing   bool
	saving    bool
	loadError string
}

// NewPolicySettingsView builds the policy view. It subscribes to nothing;
// policy settings change only through this screen.
func NewPolicySettingsView(g ports.PolicyGateway, n ports.Notifier, logger *slog.Logger) *PolicySettingsView {
	return &PolicySettingsView{gateway: g, notifier: n, logger: logger}
}

// Refresh re-fetches the settings snapshot and leaves edit mode.
func (v *PolicySettingsView) Refresh(ctx context.Context) error {
	data, err := v.gateway.PolicySettings(ctx)
	if err != nil {
		v.loadError = "Error loading policy settings."
		v.logger.ErrorContext(ctx, "policy settings fetch failed", slog.String("error", err.Error()))
		return err
	}
	v.settings = data
	v.draft = *data
	v.editing = false
	v.loadError = ""
	return nil
}

func (v *PolicySettingsView) Editing() bool     { return v.editing }
func (v *PolicySettingsView) Saving() bool      { return v.saving }
func (v *PolicySettingsView) LoadError() string { return v.loadError }

// Settings returns the last fetched snapshot, or nil before the first load.
func (v *PolicySettingsView) Settings() *domain.PolicySettings {
	if v.settings == nil {
		return nil
	}
	s := *v.settings
	return &s
}

// Draft returns the values under edit.
func (v *PolicySettingsView) Draft() domain.PolicySettings { return v.draft }

// StartEdit copies the snapshot into the draft and enters edit mode.
func (v *PolicySettingsView) StartEdit() error {
	if v.settings == nil {
		return fmt.Errorf("settings not loaded: %w", apperrors.ErrValidation)
	}
	v.draft = *v.settings
	v.editing = true
	return nil
}

// SetDraft replaces the values under edit.
func (v *PolicySettingsView) SetDraft(s domain.PolicySettings) {
	v.draft = s
}

// CancelEdit discards the draft and restores the snapshot.
func (v *PolicySettingsView) CancelEdit() {
	if v.settings != nil {
		v.draft = *v.settings
	}
	v.editing = false
}

// Save submits the draft and re-fetches the authoritative snapshot. On
// failure the screen stays in edit mode with the draft intact.
func (v *PolicySettingsView) Save(ctx context.Context) error {
	if !v.editing {
		return fmt.Errorf("not in edit mode: %w", apperrors.ErrValidation)
	}
	v.saving = true
	defer func() { v.saving = false }()

	if err := v.gateway.SavePolicySettings(ctx, v.draft); err != nil {
		v.notifier.Error(ctx, apperrors.MessageFor(err))
		return err
	}
	v.notifier.Success(ctx, "Policy settings saved.")
	return v.Refresh(ctx)
}
