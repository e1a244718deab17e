package divecenter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/DCMS-ScheduleService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент основного сервиса дайв-центра (бронирования, лодки,
// персонал, дайв-сайты). Планировщик читает реестры и выполняет только
// частичные обновления полей назначения бронирований
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента основного сервиса
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListBookings получает бронирования локации за период [from, to]
func (c *Client) ListBookings(ctx context.Context, locationID string, from, to time.Time) ([]*domain.Booking, error) {
	query := url.Values{}
	query.Set("locationId", locationID)
	query.Set("from", from.Format(domain.DateFormat))
	query.Set("to", to.Format(domain.DateFormat))

	var wire []Booking
	if err := c.getJSON(ctx, "/internal/bookings?"+query.Encode(), &wire); err != nil {
		return nil, err
	}

	bookings := make([]*domain.Booking, 0, len(wire))
	for i := range wire {
		booking, err := wire[i].ToDomain()
		if err != nil {
			// Бронирование с некорректной датой пропускаем, но не роняем выдачу
			c.log.Warn("ListBookings: skipping booking id=%s: %v", wire[i].ID, err)
			continue
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

// ListBoats получает активные лодки локации
func (c *Client) ListBoats(ctx context.Context, locationID string) ([]domain.Boat, error) {
	query := url.Values{}
	query.Set("locationId", locationID)

	var wire []Boat
	if err := c.getJSON(ctx, "/internal/boats?"+query.Encode(), &wire); err != nil {
		return nil, err
	}

	boats := make([]domain.Boat, 0, len(wire))
	for i := range wire {
		if !wire[i].IsActive {
			continue
		}
		boats = append(boats, wire[i].ToDomain())
	}

	return boats, nil
}

// ListStaff получает активный персонал локации, опционально фильтруя по ролям
func (c *Client) ListStaff(ctx context.Context, locationID string, roles []domain.StaffRole) ([]domain.Staff, error) {
	query := url.Values{}
	query.Set("locationId", locationID)
	for _, role := range roles {
		query.Add("role", string(role))
	}

	var wire []Staff
	if err := c.getJSON(ctx, "/internal/staff?"+query.Encode(), &wire); err != nil {
		return nil, err
	}

	staff := make([]domain.Staff, 0, len(wire))
	for i := range wire {
		if !wire[i].IsActive {
			continue
		}
		staff = append(staff, wire[i].ToDomain())
	}

	return staff, nil
}

// ListDiveSites получает дайв-сайты локации
func (c *Client) ListDiveSites(ctx context.Context, locationID string) ([]domain.DiveSite, error) {
	query := url.Values{}
	query.Set("locationId", locationID)

	var wire []DiveSite
	if err := c.getJSON(ctx, "/internal/dive-sites?"+query.Encode(), &wire); err != nil {
		return nil, err
	}

	sites := make([]domain.DiveSite, 0, len(wire))
	for i := range wire {
		sites = append(sites, wire[i].ToDomain())
	}

	return sites, nil
}

// UpdateBookingSlot выполняет частичное обновление полей назначения бронирования
// Никакие другие поля бронирования отсюда не изменяются
func (c *Client) UpdateBookingSlot(ctx context.Context, bookingID string, patch BookingSlotPatch) error {
	body, err := json.Marshal(patch.toWire())
	if err != nil {
		return fmt.Errorf("%w: failed to encode patch: %v", ErrInternal, err)
	}

	endpoint := fmt.Sprintf("%s/internal/bookings/%s", c.baseURL, url.PathEscape(bookingID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrBookingNotFound
	default:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}
}

// getJSON выполняет GET-запрос и декодирует JSON-ответ
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
