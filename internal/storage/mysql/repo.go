package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"book_my_hotel/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
func valInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valDate(d domain.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.Time()
}
func valJSON(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// -----------------------------------------------------------------------------
// HOTELS
// -----------------------------------------------------------------------------

// UpsertHotel writes the hotel and replaces its room set in one transaction.
func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) (err error) {
	amen, err := valJSON(nonNil(h.Amenities))
	if err != nil {
		return err
	}
	var loc any
	if h.LocationDetails != nil {
		if loc, err = valJSON(h.LocationDetails); err != nil {
			return err
		}
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, upsertHotelSQL,
		h.ID,
		h.Name,
		h.Location,
		h.Rating,
		h.Price,
		valStr(h.Image),
		valStr(h.Description),
		amen,
		loc,
	); err != nil {
		return fmt.Errorf("upsert hotel %d: %w", h.ID, err)
	}
	if _, err = tx.ExecContext(ctx, deleteRoomsSQL, h.ID); err != nil {
		return fmt.Errorf("clear rooms of %d: %w", h.ID, err)
	}
	if len(h.Rooms) > 0 {
		values := make([]string, 0, len(h.Rooms))
		args := make([]any, 0, len(h.Rooms)*7) // 7 params per row
		for _, rm := range h.Rooms {
			feats, ferr := valJSON(nonNil(rm.Features))
			if ferr != nil {
				return ferr
			}
			values = append(values, "(?,?,?,?,?,?,?)")
			args = append(args, h.ID, rm.ID, rm.Type, rm.Price, rm.Capacity, rm.Available, feats)
		}
		if _, err = tx.ExecContext(ctx, insertRoomsPrefix+strings.Join(values, ","), args...); err != nil {
			return fmt.Errorf("insert rooms of %d: %w", h.ID, err)
		}
	}
	return tx.Commit()
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	hs, err := r.queryHotels(ctx, selectHotelsSQL+"WHERE id = ?", id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if len(hs) == 0 {
		return domain.Hotel{}, domain.ErrNotFound
	}
	rooms, err := r.queryRooms(ctx, selectRoomsSQL+"WHERE hotel_id = ? ORDER BY id", id)
	if err != nil {
		return domain.Hotel{}, err
	}
	hs[0].Rooms = rooms[id]
	if hs[0].Rooms == nil {
		hs[0].Rooms = []domain.Room{}
	}
	return hs[0], nil
}

// ListHotels returns the whole catalog ordered by id, rooms attached.
func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	hs, err := r.queryHotels(ctx, selectHotelsSQL+"ORDER BY id")
	if err != nil {
		return nil, err
	}
	rooms, err := r.queryRooms(ctx, selectRoomsSQL+"ORDER BY hotel_id, id")
	if err != nil {
		return nil, err
	}
	for i := range hs {
		hs[i].Rooms = rooms[hs[i].ID]
		if hs[i].Rooms == nil {
			hs[i].Rooms = []domain.Room{}
		}
	}
	return hs, nil
}

func (r *Repo) CountHotels(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, countHotelsSQL).Scan(&n)
	return n, err
}

func (r *Repo) queryHotels(ctx context.Context, q string, args ...any) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Hotel{}
	for rows.Next() {
		var h domain.Hotel
		var image, desc sql.NullString
		var amenitiesJSON, locJSON []byte
		if err := rows.Scan(&h.ID, &h.Name, &h.Location, &h.Rating, &h.Price, &image, &desc, &amenitiesJSON, &locJSON); err != nil {
			return nil, err
		}
		if len(locJSON) > 0 && string(locJSON) != "null" {
			var ld domain.LocationDetails
			if err := json.Unmarshal(locJSON, &ld); err != nil {
				return nil, fmt.Errorf("hotel %d location details: %w", h.ID, err)
			}
			h.LocationDetails = &ld
		}
		h.Image = image.String
		h.Description = desc.String
		_ = json.Unmarshal(amenitiesJSON, &h.Amenities)
		if h.Amenities == nil {
			h.Amenities = []string{}
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) queryRooms(ctx context.Context, q string, args ...any) (map[int64][]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64][]domain.Room{}
	for rows.Next() {
		var rm domain.Room
		var featuresJSON []byte
		if err := rows.Scan(&rm.HotelID, &rm.ID, &rm.Type, &rm.Price, &rm.Capacity, &rm.Available, &featuresJSON); err != nil {
			return nil, err
		}
		_ = json.Unmarshal(featuresJSON, &rm.Features)
		out[rm.HotelID] = append(out[rm.HotelID], rm)
	}
	return out, rows.Err()
}

// -----------------------------------------------------------------------------
// REVIEWS
// -----------------------------------------------------------------------------

// ReplaceReviews swaps the hotel's review set in one transaction.
func (r *Repo) ReplaceReviews(ctx context.Context, hotelID int64, rs []domain.Review) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, deleteReviewsSQL, hotelID); err != nil {
		return fmt.Errorf("clear reviews of %d: %w", hotelID, err)
	}
	if len(rs) > 0 {
		values := make([]string, 0, len(rs))
		args := make([]any, 0, len(rs)*6) // 6 params per row
		for _, rv := range rs {
			values = append(values, "(?,?,?,?,?,?)")
			args = append(args, hotelID, rv.ID, valStr(rv.UserName), rv.Rating, valStr(rv.Comment), valDate(rv.Date))
		}
		if _, err = tx.ExecContext(ctx, insertReviewsPrefix+strings.Join(values, ","), args...); err != nil {
			return fmt.Errorf("insert reviews of %d: %w", hotelID, err)
		}
	}
	return tx.Commit()
}

func (r *Repo) ListReviews(ctx context.Context, hotelID int64) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, selectReviewsSQL, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		var userName, comment sql.NullString
		var date sql.NullTime
		if err := rows.Scan(&rv.HotelID, &rv.ID, &userName, &rv.Rating, &comment, &date); err != nil {
			return nil, err
		}
		rv.UserName = userName.String
		rv.Comment = comment.String
		if date.Valid {
			rv.Date = domain.DateOf(date.Time)
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// -----------------------------------------------------------------------------
// BOOKINGS
// -----------------------------------------------------------------------------

func (r *Repo) SaveBooking(ctx context.Context, b domain.Booking) error {
	_, err := r.db.ExecContext(ctx, saveBookingSQL,
		b.ID,
		b.HotelID,
		b.HotelName,
		b.Location,
		valStr(b.RoomID),
		valStr(b.RoomType),
		b.CheckIn.Time(),
		b.CheckOut.Time(),
		b.Guests,
		b.NightlyPrice,
		b.TotalAmount,
		valStr(b.GuestName),
		valStr(b.GuestEmail),
		valStr(b.GuestPhone),
		valInt64(b.UserID),
		valStr(b.ConfirmationCode),
		string(b.Status),
		b.CreatedAt.UTC(),
	)
	return err
}

func (r *Repo) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	bs, err := r.queryBookings(ctx, selectBookingsSQL+"WHERE id = ?", id)
	if err != nil {
		return domain.Booking{}, err
	}
	if len(bs) == 0 {
		return domain.Booking{}, domain.ErrNotFound
	}
	return bs[0], nil
}

// ListBookings returns matching bookings, newest first.
func (r *Repo) ListBookings(ctx context.Context, q domain.BookingsQuery) ([]domain.Booking, error) {
	var where []string
	var args []any
	if q.UserID != nil {
		where = append(where, "user_id = ?")
		args = append(args, *q.UserID)
	}
	if q.HotelID != nil {
		where = append(where, "hotel_id = ?")
		args = append(args, *q.HotelID)
	}
	stmt := selectBookingsSQL
	if len(where) > 0 {
		stmt += "WHERE " + strings.Join(where, " AND ") + "\n"
	}
	stmt += "ORDER BY created_at DESC, id DESC"
	return r.queryBookings(ctx, stmt, args...)
}

func (r *Repo) DeleteBooking(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteBookingSQL, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) queryBookings(ctx context.Context, q string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Booking{}
	for rows.Next() {
		var b domain.Booking
		var (
			roomID, roomType, guestName sql.NullString
			guestEmail, guestPhone      sql.NullString
			code, status                sql.NullString
			userID                      sql.NullInt64
			checkIn, checkOut           time.Time
		)
		if err := rows.Scan(
			&b.ID,
			&b.HotelID,
			&b.HotelName,
			&b.Location,
			&roomID,
			&roomType,
			&checkIn,
			&checkOut,
			&b.Guests,
			&b.NightlyPrice,
			&b.TotalAmount,
			&guestName,
			&guestEmail,
			&guestPhone,
			&userID,
			&code,
			&status,
			&b.CreatedAt,
		); err != nil {
			return nil, err
		}
		b.RoomID = roomID.String
		b.RoomType = roomType.String
		b.CheckIn = domain.DateOf(checkIn)
		b.CheckOut = domain.DateOf(checkOut)
		b.GuestName = guestName.String
		b.GuestEmail = guestEmail.String
		b.GuestPhone = guestPhone.String
		b.ConfirmationCode = code.String
		b.Status = domain.Status(status.String)
		if userID.Valid {
			u := userID.Int64
			b.UserID = &u
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// -----------------------------------------------------------------------------
// USERS
// -----------------------------------------------------------------------------

func (r *Repo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	prefs, err := valJSON(u.Preferences)
	if err != nil {
		return domain.User{}, err
	}
	res, err := r.db.ExecContext(ctx, insertUserSQL, u.Name, u.Email, valStr(u.Phone), prefs)
	if err != nil {
		return domain.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, err
	}
	u.ID = id
	return u, nil
}

func (r *Repo) UpdateUser(ctx context.Context, u domain.User) error {
	prefs, err := valJSON(u.Preferences)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, updateUserSQL, u.Name, u.Email, valStr(u.Phone), prefs, u.ID)
	return err
}

func (r *Repo) GetUser(ctx context.Context, id int64) (domain.User, error) {
	us, err := r.queryUsers(ctx, selectUsersSQL+" WHERE id = ?", id)
	if err != nil {
		return domain.User{}, err
	}
	if len(us) == 0 {
		return domain.User{}, domain.ErrNotFound
	}
	return us[0], nil
}

func (r *Repo) ListUsers(ctx context.Context) ([]domain.User, error) {
	return r.queryUsers(ctx, selectUsersSQL+" ORDER BY id")
}

func (r *Repo) queryUsers(ctx context.Context, q string, args ...any) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.User{}
	for rows.Next() {
		var u domain.User
		var phone sql.NullString
		var prefs []byte
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &phone, &prefs); err != nil {
			return nil, err
		}
		u.Phone = phone.String
		if len(prefs) > 0 {
			if err := json.Unmarshal(prefs, &u.Preferences); err != nil {
				return nil, fmt.Errorf("user %d preferences: %w", u.ID, err)
			}
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
