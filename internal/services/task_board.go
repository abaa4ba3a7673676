package services

import (
	"context"
	"fmt"
	"parcel-tracking-service/internal/domain"
	"parcel-tracking-service/internal/platform/obs"
	"parcel-tracking-service/internal/ports"
	"regexp"
	"strings"
)

var otpFormat = regexp.MustCompile(`^\d{4}$`)

// BoardFilter narrows a board listing. An empty Status or "All" keeps every
// status; Query matches tracking id, sender or recipient.
type BoardFilter struct {
	Status string
	Query  string
}

// TaskBoard backs the admin, staff and agent dashboards.
type TaskBoard struct {
	parcels ports.ParcelRepository
	latency ports.Latency
	otp     string
}

func NewTaskBoard(parcels ports.ParcelRepository, latency ports.Latency, deliveryOTP string) *TaskBoard {
	return &TaskBoard{parcels: parcels, latency: latency, otp: deliveryOTP}
}

func (b *TaskBoard) List(ctx context.Context, f BoardFilter) (_ []*domain.AssignedParcel, err error) {
	defer obs.Time(ctx, "board.List")(&err)

	var status domain.ParcelStatusCode
	if s := strings.TrimSpace(f.Status); s != "" && !strings.EqualFold(s, "all") {
		st, ok := domain.ParseStatus(s)
		if !ok {
			return nil, domain.ValidationError("list parcels", fmt.Sprintf("unknown status %q", f.Status))
		}
		status = st
	}

	all, err := b.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.AssignedParcel, 0, len(all))
	for _, p := range all {
		if status != "" && p.Status != status {
			continue
		}
		if !p.Matches(f.Query) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// AgentTasks returns the parcels an agent works on. When none are moving
// the whole board is returned so the agent view is never empty.
func (b *TaskBoard) AgentTasks(ctx context.Context) (_ []*domain.AssignedParcel, err error) {
	defer obs.Time(ctx, "board.AgentTasks")(&err)

	all, err := b.load(ctx)
	if err != nil {
		return nil, err
	}

	tasks := make([]*domain.AssignedParcel, 0, len(all))
	for _, p := range all {
		if p.IsAgentTask() {
			tasks = append(tasks, p)
		}
	}
	if len(tasks) == 0 {
		return all, nil
	}
	return tasks, nil
}

func (b *TaskBoard) Summary(ctx context.Context) (_ domain.BoardSummary, err error) {
	defer obs.Time(ctx, "board.Summary")(&err)

	all, err := b.load(ctx)
	if err != nil {
		return domain.BoardSummary{}, err
	}
	return domain.Summarize(all), nil
}

// UpdateStatus is the staff action: any known status may be set on any
// parcel on the board.
func (b *TaskBoard) UpdateStatus(ctx context.Context, trackingID, status string) (_ *domain.AssignedParcel, err error) {
	defer obs.Time(ctx, "board.UpdateStatus")(&err)

	const op = "update parcel status"

	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" {
		return nil, domain.ValidationError(op, "tracking id is required")
	}
	st, ok := domain.ParseStatus(status)
	if !ok {
		return nil, domain.ValidationError(op, fmt.Sprintf("unknown status %q", status))
	}

	return b.setStatus(ctx, op, trackingID, st)
}

// ConfirmDelivery is the agent action: a matching four-digit OTP marks the
// parcel Delivered.
func (b *TaskBoard) ConfirmDelivery(ctx context.Context, trackingID, otp string) (_ *domain.AssignedParcel, err error) {
	defer obs.Time(ctx, "board.ConfirmDelivery")(&err)

	const op = "confirm delivery"

	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" {
		return nil, domain.ValidationError(op, "tracking id is required")
	}
	otp = strings.TrimSpace(otp)
	if !otpFormat.MatchString(otp) {
		return nil, domain.ValidationError(op, "OTP must be 4 digits")
	}
	if otp != b.otp {
		return nil, domain.ValidationError(op, "invalid OTP")
	}

	return b.setStatus(ctx, op, trackingID, domain.StatusDelivered)
}

func (b *TaskBoard) setStatus(ctx context.Context, op, trackingID string, st domain.ParcelStatusCode) (*domain.AssignedParcel, error) {
	if b.latency != nil {
		if err := b.latency.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	ok, err := b.parcels.UpdateStatus(ctx, trackingID, st)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return nil, domain.NotFoundError(op, fmt.Sprintf("no parcel with tracking id %s", trackingID))
	}

	p, err := b.parcels.GetParcel(ctx, trackingID)
	if err != nil {
		return nil, fmt.Errorf("%s: reload: %w", op, err)
	}
	if p == nil {
		return nil, domain.NotFoundError(op, fmt.Sprintf("no parcel with tracking id %s", trackingID))
	}
	return p, nil
}

func (b *TaskBoard) load(ctx context.Context) ([]*domain.AssignedParcel, error) {
	if b.latency != nil {
		if err := b.latency.Wait(ctx); err != nil {
			return nil, fmt.Errorf("load board: %w", err)
		}
	}

	all, err := b.parcels.ListParcels(ctx)
	if err != nil {
		return nil, fmt.Errorf("load board: %w", err)
	}
	return all, nil
}
