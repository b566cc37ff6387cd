package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"surfcamp-backend/internal/model"
)

// CampResponse represents the API response for a single camp, with the
// dashboard counters the camp list renders.
type CampResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Week         string    `json:"week"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Bookings     int64     `json:"bookings"`
	Participants int64     `json:"participants"`
	Assigned     int64     `json:"assigned"`
}

// GetCamps handles the GET /api/camps request.
func GetCamps(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var camps []model.Camp
		if err := db.Order("start_date").Find(&camps).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve camps"})
			return
		}

		type bookingAgg struct {
			CampID       string
			Bookings     int64
			Participants int64
		}
		var bookingAggs []bookingAgg
		if err := db.
			Model(&model.Booking{}).
			Select("bookings.camp_id as camp_id, COUNT(DISTINCT bookings.id) as bookings, COUNT(participants.id) as participants").
			Joins("LEFT JOIN participants ON participants.booking_id = bookings.id").
			Where("bookings.status = ?", model.BookingStatusConfirmed).
			Group("bookings.camp_id").
			Scan(&bookingAggs).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate bookings"})
			return
		}

		type assignedAgg struct {
			CampID   string
			Assigned int64
		}
		var assignedAggs []assignedAgg
		if err := db.
			Model(&model.RoomAssignment{}).
			Select("camp_id as camp_id, COUNT(*) as assigned").
			Group("camp_id").
			Scan(&assignedAggs).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate assignments"})
			return
		}

		bookingMap := make(map[string]bookingAgg, len(bookingAggs))
		for _, a := range bookingAggs {
			bookingMap[a.CampID] = a
		}
		assignedMap := make(map[string]int64, len(assignedAggs))
		for _, a := range assignedAggs {
			assignedMap[a.CampID] = a.Assigned
		}

		responses := make([]CampResponse, 0, len(camps))
		for _, camp := range camps {
			b := bookingMap[camp.ID] // zero value when no bookings yet
			responses = append(responses, CampResponse{
				ID:           camp.ID,
				Name:         camp.Name,
				Week:         camp.Week,
				StartDate:    camp.StartDate,
				EndDate:      camp.EndDate,
				Bookings:     b.Bookings,
				Participants: b.Participants,
				Assigned:     assignedMap[camp.ID],
			})
		}
		c.JSON(http.StatusOK, responses)
	}
}

// GetCamp handles the GET /api/camps/{camp_id} request.
func GetCamp(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var camp model.Camp
		if err := db.First(&camp, "id = ?", c.Param("camp_id")).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "camp not found"})
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve camp"})
			}
			return
		}
		c.JSON(http.StatusOK, camp)
	}
}
