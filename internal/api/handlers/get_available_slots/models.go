package get_available_slots

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/LCP-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/LCP-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/LCP-AppointmentService/pkg/ptr"
	"github.com/m04kA/LCP-AppointmentService/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	LawyerID string          `json:"lawyerId"`
	Date     string          `json:"date"`
	Slots    []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartAt         string `json:"startAt"` // ISO 8601 format
	DurationMinutes int    `json:"durationMinutes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartAt:         slot.StartAt.Format(time.RFC3339),
			DurationMinutes: slot.DurationMinutes,
		}
	}

	return &AvailableSlotsResponse{
		LawyerID: resp.LawyerID,
		Date:     resp.Date.Format(domain.DateFormat),
		Slots:    slots,
	}
}

// ToUseCaseRequest создает запрос use case из path и query параметров
func ToUseCaseRequest(lawyerID string, query url.Values) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		return nil, err
	}

	opts := getAvailableSlots.Options{}

	if v := query.Get("durationMinutes"); v != "" {
		if opts.DurationMinutes, err = strconv.Atoi(v); err != nil {
			return nil, err
		}
	}
	if v := query.Get("intervalMinutes"); v != "" {
		if opts.IntervalMinutes, err = strconv.Atoi(v); err != nil {
			return nil, err
		}
	}
	if v := query.Get("bufferMinutes"); v != "" {
		if opts.BufferMinutes, err = strconv.Atoi(v); err != nil {
			return nil, err
		}
	}
	if v := query.Get("workStart"); v != "" {
		opts.WorkStart = types.TimeString(v)
	}
	if v := query.Get("workEnd"); v != "" {
		opts.WorkEnd = types.TimeString(v)
	}
	if v := query.Get("breakStart"); v != "" {
		opts.BreakStart = types.TimeString(v)
	}
	if v := query.Get("breakEnd"); v != "" {
		opts.BreakEnd = types.TimeString(v)
	}
	if v := query.Get("excludePastSlots"); v != "" {
		excludePast, parseErr := strconv.ParseBool(v)
		if parseErr != nil {
			return nil, parseErr
		}
		opts.ExcludePastSlots = ptr.Ptr(excludePast)
	}

	return &getAvailableSlots.Request{
		LawyerID: lawyerID,
		Date:     date,
		Options:  opts,
	}, nil
}
