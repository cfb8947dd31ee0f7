package app

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"book_my_hotel/internal/domain"
)

/********** alias registries (single source of truth) **********/

var hotelAliases = map[string][]string{
	"name":        {"name", "hotel_name", "hotelName", "title"},
	"location":    {"location", "city", "address.city", "locationDetails.address"},
	"image":       {"image", "image_url", "imageUrl", "thumbnail"},
	"description": {"description", "summary", "about"},
}

var roomAliases = map[string][]string{
	"id":   {"id", "room_id", "roomId"},
	"type": {"type", "room_type", "roomType", "name"},
}

var reviewAliases = map[string][]string{
	"id":       {"id", "review_id", "reviewId"},
	"userName": {"userName", "user_name", "author", "name"},
	"comment":  {"comment", "text", "body"},
	"date":     {"date", "created_at", "createdAt"},
}

var (
	hotelIDPaths    = []string{"id", "hotel_id", "hotelId"}
	hotelRating     = []string{"rating", "stars", "rating.value", "score"}
	hotelPrice      = []string{"price", "price_per_night", "pricePerNight", "nightlyPrice"}
	roomPricePaths  = []string{"price", "price_per_night", "pricePerNight"}
	roomCapacity    = []string{"capacity", "max_guests", "maxGuests", "occupancy"}
	imagesFallbacks = []string{"images", "photos"}
)

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if s := lookupStr(m, p); s != "" {
			return s
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (float64/int/string like "4,5").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case int64:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// firstInt64Flexible: int64 from several paths (float64/int/string).
func firstInt64Flexible(m map[string]any, paths ...string) *int64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			x := int64(math.Round(v))
			return &x
		case int:
			x := int64(v)
			return &x
		case int64:
			x := v
			return &x
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return &n
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				x := int64(math.Round(f))
				return &x
			}
		}
	}
	return nil
}

// firstSliceStrings: accept []any with either strings or {url/src/name}.
func firstSliceStrings(m map[string]any, paths ...string) []string {
	for _, k := range paths {
		if raw, ok := lookupAny(m, k).([]any); ok {
			out := make([]string, 0, len(raw))
			for _, it := range raw {
				switch t := it.(type) {
				case string:
					if s := strings.TrimSpace(t); s != "" {
						out = append(out, s)
					}
				case map[string]any:
					for _, f := range []string{"url", "src", "name", "label"} {
						if u, ok := t[f].(string); ok && u != "" {
							out = append(out, u)
							break
						}
					}
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return nil
}

func boolOr(m map[string]any, key string, def bool) bool {
	switch v := lookupAny(m, key).(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	case float64:
		return v != 0
	}
	return def
}

/********** hotel mapper **********/

func mapHotel(p map[string]any) domain.Hotel {
	var h domain.Hotel
	if v := firstInt64Flexible(p, hotelIDPaths...); v != nil {
		h.ID = *v
	}
	h.Name = firstNonEmptyAlias(p, hotelAliases, "name")
	h.Location = firstNonEmptyAlias(p, hotelAliases, "location")
	h.Description = firstNonEmptyAlias(p, hotelAliases, "description")
	h.Image = firstNonEmptyAlias(p, hotelAliases, "image")
	if h.Image == "" {
		if imgs := firstSliceStrings(p, imagesFallbacks...); len(imgs) > 0 {
			h.Image = imgs[0]
		}
	}
	if f := getFloatFlexible(p, hotelRating...); f != nil {
		h.Rating = *f
	}
	if v := firstInt64Flexible(p, hotelPrice...); v != nil {
		h.Price = *v
	}
	h.Amenities = firstSliceStrings(p, "amenities", "facilities")
	if h.Amenities == nil {
		h.Amenities = []string{}
	}
	h.Rooms = mapRooms(h, p)
	h.LocationDetails = mapLocationDetails(p)
	return h
}

// mapLocationDetails reads the optional "locationDetails" object. Coordinates
// are kept only when both lat and lng are present.
func mapLocationDetails(p map[string]any) *domain.LocationDetails {
	m, ok := lookupAny(p, "locationDetails").(map[string]any)
	if !ok {
		return nil
	}
	ld := &domain.LocationDetails{Address: lookupStr(m, "address")}
	lat := getFloatFlexible(m, "coordinates.lat", "lat", "latitude")
	lng := getFloatFlexible(m, "coordinates.lng", "coordinates.lon", "lng", "lon", "longitude")
	if lat != nil && lng != nil {
		ld.Coordinates = &domain.Coordinates{Lat: *lat, Lng: *lng}
	}
	ld.NearbyAttractions = firstSliceStrings(m, "nearbyAttractions", "nearby_attractions", "attractions")
	if ld.NearbyAttractions == nil {
		ld.NearbyAttractions = []string{}
	}
	return ld
}

/********** reviews mapper **********/

// mapReviews reads the "reviews" array. Missing ids become "<hotel>-r<n>";
// dates keep their YYYY-MM-DD prefix and are dropped when unparsable.
func mapReviews(hotelID int64, p map[string]any) []domain.Review {
	raw, _ := lookupAny(p, "reviews").([]any)
	out := make([]domain.Review, 0, len(raw))
	for i, it := range raw {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		r := domain.Review{HotelID: hotelID}
		r.ID = firstNonEmptyAlias(m, reviewAliases, "id")
		if r.ID == "" {
			if n := firstInt64Flexible(m, "id"); n != nil {
				r.ID = strconv.FormatInt(*n, 10)
			} else {
				r.ID = fmt.Sprintf("%d-r%d", hotelID, i+1)
			}
		}
		r.UserName = firstNonEmptyAlias(m, reviewAliases, "userName")
		r.Comment = firstNonEmptyAlias(m, reviewAliases, "comment")
		if f := getFloatFlexible(m, "rating", "score", "stars"); f != nil {
			r.Rating = *f
		}
		if ds := firstNonEmptyAlias(m, reviewAliases, "date"); len(ds) >= 10 {
			if d, err := domain.ParseDate(ds[:10]); err == nil {
				r.Date = d
			}
		}
		out = append(out, r)
	}
	return out
}

/********** rooms mapper **********/

// mapRooms reads the "rooms" array. Missing room ids become "<hotel>-<n>",
// a missing price falls back to the hotel's, a missing capacity to 1 and a
// missing availability flag to true.
func mapRooms(h domain.Hotel, p map[string]any) []domain.Room {
	raw, _ := lookupAny(p, "rooms").([]any)
	out := make([]domain.Room, 0, len(raw))
	for i, it := range raw {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		r := domain.Room{HotelID: h.ID}
		r.ID = firstNonEmptyAlias(m, roomAliases, "id")
		if r.ID == "" {
			if n := firstInt64Flexible(m, "id"); n != nil {
				r.ID = strconv.FormatInt(*n, 10)
			} else {
				r.ID = fmt.Sprintf("%d-%d", h.ID, i+1)
			}
		}
		r.Type = firstNonEmptyAlias(m, roomAliases, "type")
		r.Price = h.Price
		if v := firstInt64Flexible(m, roomPricePaths...); v != nil {
			r.Price = *v
		}
		r.Capacity = 1
		if v := firstInt64Flexible(m, roomCapacity...); v != nil {
			r.Capacity = int(*v)
		}
		r.Available = boolOr(m, "available", true)
		r.Features = firstSliceStrings(m, "features", "amenities")
		out = append(out, r)
	}
	return out
}
