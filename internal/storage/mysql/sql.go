package mysql

const upsertHotelSQL = `
INSERT INTO hotels
  (id, name, location, rating, price, image, description, amenities, location_details)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name        = VALUES(name),
  location    = VALUES(location),
  rating      = VALUES(rating),
  price       = VALUES(price),
  image       = VALUES(image),
  description = VALUES(description),
  amenities   = VALUES(amenities),
  location_details = VALUES(location_details),
  updated_at  = CURRENT_TIMESTAMP
`

// Rooms are replaced as a set with their hotel.
const deleteRoomsSQL = `DELETE FROM rooms WHERE hotel_id = ?`

const insertRoomsPrefix = "INSERT INTO rooms\n  (hotel_id, id, type, price, capacity, available, features)\nVALUES "

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const selectHotelsSQL = `
SELECT id, name, location, rating, price, image, description, amenities, location_details
FROM hotels
`

const selectRoomsSQL = `
SELECT hotel_id, id, type, price, capacity, available, features
FROM rooms
`

const countHotelsSQL = `SELECT COUNT(*) FROM hotels`

// -----------------------------------------------------------------------------
// REVIEWS
// -----------------------------------------------------------------------------

// Reviews are replaced as a set, like rooms.
const deleteReviewsSQL = `DELETE FROM reviews WHERE hotel_id = ?`

const insertReviewsPrefix = "INSERT INTO reviews\n  (hotel_id, id, user_name, rating, comment, review_date)\nVALUES "

// Undated reviews sort last.
const selectReviewsSQL = `
SELECT hotel_id, id, user_name, rating, comment, review_date
FROM reviews
WHERE hotel_id = ?
ORDER BY review_date DESC, id DESC
`

// -----------------------------------------------------------------------------
// BOOKINGS
// -----------------------------------------------------------------------------

// Whole-value replace; there is no partial update path.
const saveBookingSQL = `
INSERT INTO bookings
  (id, hotel_id, hotel_name, location, room_id, room_type, check_in, check_out, guests,
   nightly_price, total_amount, guest_name, guest_email, guest_phone, user_id,
   confirmation_code, status, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  hotel_id          = VALUES(hotel_id),
  hotel_name        = VALUES(hotel_name),
  location          = VALUES(location),
  room_id           = VALUES(room_id),
  room_type         = VALUES(room_type),
  check_in          = VALUES(check_in),
  check_out         = VALUES(check_out),
  guests            = VALUES(guests),
  nightly_price     = VALUES(nightly_price),
  total_amount      = VALUES(total_amount),
  guest_name        = VALUES(guest_name),
  guest_email       = VALUES(guest_email),
  guest_phone       = VALUES(guest_phone),
  user_id           = VALUES(user_id),
  confirmation_code = VALUES(confirmation_code),
  status            = VALUES(status)
`

const selectBookingsSQL = `
SELECT id, hotel_id, hotel_name, location, room_id, room_type, check_in, check_out, guests,
       nightly_price, total_amount, guest_name, guest_email, guest_phone, user_id,
       confirmation_code, status, created_at
FROM bookings
`

const deleteBookingSQL = `DELETE FROM bookings WHERE id = ?`

// -----------------------------------------------------------------------------
// USERS
// -----------------------------------------------------------------------------

const insertUserSQL = `INSERT INTO users (name, email, phone, preferences) VALUES (?, ?, ?, ?)`

const updateUserSQL = `UPDATE users SET name = ?, email = ?, phone = ?, preferences = ? WHERE id = ?`

const selectUsersSQL = `SELECT id, name, email, phone, preferences FROM users`
