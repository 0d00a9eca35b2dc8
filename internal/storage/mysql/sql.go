package mysql

const ensureProfileSQL = `
INSERT INTO profiles (user_id, total_bookings, offer_eligible)
VALUES (?, 0, 0)
ON DUPLICATE KEY UPDATE user_id = user_id
`

const getProfileSQL = `
SELECT user_id, total_bookings, offer_eligible
FROM profiles
WHERE user_id = ?
`

// Conditional advance: the WHERE clause pins the snapshot that priced the
// booking. Zero rows affected means a concurrent booking won the race.
const advanceProfileSQL = `
UPDATE profiles
SET total_bookings = ?, offer_eligible = ?, updated_at = CURRENT_TIMESTAMP
WHERE user_id = ? AND total_bookings = ? AND offer_eligible = ?
`

const insertBookingSQL = `
INSERT INTO bookings
  (id, user_id, room_type, check_in, check_out, guests, nights,
   base_amount, discount_applied, discount_amount, gst_amount, total_amount,
   status, idempotency_key, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const bookingColumns = `
  id, user_id, room_type, check_in, check_out, guests, nights,
  base_amount, discount_applied, discount_amount, gst_amount, total_amount,
  status, idempotency_key, created_at
`

const getBookingByIdemSQL = `
SELECT` + bookingColumns + `
FROM bookings
WHERE user_id = ? AND idempotency_key = ?
`

const listBookingsSQL = `
SELECT` + bookingColumns + `
FROM bookings
WHERE user_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?
`

const insertContactSQL = `
INSERT INTO contact_messages (name, email, message, remote_ip, created_at)
VALUES (?, ?, ?, ?, ?)
`
