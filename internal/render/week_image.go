// Package render draws the admin week-calendar PNG.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/fogleman/gg"
	"github.com/tutorbook-app/backend/internal/model"
	"golang.org/x/image/font/basicfont"
)

const (
	imageWidth      = 1400
	imageHeight     = 900
	headerHeight    = 100
	leftLabelsWidth = 80
	legendWidth     = 120
	dayPaddingX     = 8
	minSlotHeight   = 8.0
	slotRadius      = 6.0
	totalDays       = 7
	defaultMinHour  = 8
	defaultMaxHour  = 21
)

var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	todayBgColor   = color.NRGBA{255, 99, 71, 60}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{220, 220, 220, 255}

	slotFreeColor   = color.RGBA{133, 193, 85, 220}
	slotBookedColor = color.RGBA{255, 182, 193, 255}
	slotUnpaidColor = color.RGBA{255, 204, 128, 255}
	slotTravelColor = color.RGBA{176, 190, 197, 160}
	slotTextColor   = color.RGBA{20, 24, 28, 230}
)

type weekBounds struct {
	start time.Time
	end   time.Time
}

type hourRange struct {
	start int
	end   int
	total int
}

// WeekImage renders the seven days around date as a calendar PNG.
// Booked-but-unpaid lessons get their own color so the tutor sees open
// debts at a glance; commute travel buffers are drawn as grey stubs
// above the lesson block.
func WeekImage(date time.Time, slots []*model.Slot, studentNames map[int64]string) ([]byte, error) {
	week := normalizeToWeekBounds(date)
	today := dayStart(time.Now())

	hours := calculateHourRange(slots)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / totalDays
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, week)
	drawHourLabels(dc, hours, cellHeight)
	drawDays(dc, week, today, slots, hours, dayWidth, dayHeight, cellHeight, studentNames)
	drawLegend(dc)

	return encode(dc)
}

func normalizeToWeekBounds(date time.Time) weekBounds {
	day := dayStart(date)
	offset := int(day.Weekday()) - 1
	if day.Weekday() == time.Sunday {
		offset = 6
	}
	start := day.AddDate(0, 0, -offset)
	return weekBounds{start: start, end: start.AddDate(0, 0, 7)}
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// calculateHourRange clamps the vertical axis to the hours actually used,
// padded by one hour, falling back to a working-day window.
func calculateHourRange(slots []*model.Slot) hourRange {
	minHour, maxHour := defaultMinHour, defaultMaxHour
	for _, slot := range slots {
		start := slot.MustLeaveBy().Hour()
		end := slot.EndTime.Hour() + 1
		if start < minHour {
			minHour = start
		}
		if end > maxHour {
			maxHour = end
		}
	}
	if minHour > 0 {
		minHour--
	}
	if maxHour < 24 {
		maxHour++
	}
	return hourRange{start: minHour, end: maxHour, total: maxHour - minHour}
}

func drawHeader(dc *gg.Context, week weekBounds) {
	dc.SetColor(textColor)
	title := fmt.Sprintf("%s - %s", week.start.Format("02.01.2006"), week.end.AddDate(0, 0, -1).Format("02.01.2006"))
	dc.DrawStringAnchored(title, imageWidth/2, headerHeight/3, 0.5, 0.5)
}

func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	dc.SetColor(hourLabelColor)
	for h := hours.start; h <= hours.end; h++ {
		y := headerHeight + float64(h-hours.start)*cellHeight
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", h), leftLabelsWidth/2, y, 0.5, 0.5)

		dc.SetColor(hourLineColor)
		dc.DrawLine(leftLabelsWidth, y, imageWidth-legendWidth, y)
		dc.SetLineWidth(0.5)
		dc.Stroke()
		dc.SetColor(hourLabelColor)
	}
}

func drawDays(dc *gg.Context, week weekBounds, today time.Time, slots []*model.Slot, hours hourRange, dayWidth, dayHeight int, cellHeight float64, studentNames map[int64]string) {
	for i := 0; i < totalDays; i++ {
		day := week.start.AddDate(0, 0, i)
		x := float64(leftLabelsWidth + i*dayWidth)

		dayColor := evenDayColor
		if i%2 == 1 {
			dayColor = oddDayColor
		}
		if day.Equal(today) {
			dayColor = todayBgColor
		}
		dc.SetColor(dayColor)
		dc.DrawRectangle(x, headerHeight, float64(dayWidth), float64(dayHeight))
		dc.Fill()

		dc.SetColor(textColor)
		label := fmt.Sprintf("%s %s", day.Format("Mon"), day.Format("02.01"))
		dc.DrawStringAnchored(label, x+float64(dayWidth)/2, headerHeight*2.0/3, 0.5, 0.5)

		for _, slot := range slots {
			if !dayStart(slot.StartTime).Equal(day) {
				continue
			}
			drawSlot(dc, slot, x, hours, dayWidth, cellHeight, studentNames)
		}
	}
}

func slotY(t time.Time, hours hourRange, cellHeight float64) float64 {
	minutes := float64(t.Hour()*60+t.Minute()) - float64(hours.start*60)
	return headerHeight + minutes/60*cellHeight
}

func drawSlot(dc *gg.Context, slot *model.Slot, dayX float64, hours hourRange, dayWidth int, cellHeight float64, studentNames map[int64]string) {
	x := dayX + dayPaddingX
	w := float64(dayWidth) - 2*dayPaddingX

	// Travel buffer stub above the lesson block.
	if slot.LocationType == model.LocationCommute && slot.TravelMinutes > 0 {
		ty := slotY(slot.MustLeaveBy(), hours, cellHeight)
		th := slotY(slot.StartTime, hours, cellHeight) - ty
		dc.SetColor(slotTravelColor)
		dc.DrawRoundedRectangle(x, ty, w, th, slotRadius/2)
		dc.Fill()
	}

	y := slotY(slot.StartTime, hours, cellHeight)
	h := slotY(slot.EndTime, hours, cellHeight) - y
	if h < minSlotHeight {
		h = minSlotHeight
	}

	fill := slotFreeColor
	if slot.IsBooked && !slot.IsPaid {
		fill = slotUnpaidColor
	} else if slot.IsBooked {
		fill = slotBookedColor
	}

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x, y, w, h, slotRadius)
	dc.Fill()

	dc.SetColor(slotTextColor)
	label := fmt.Sprintf("%s-%s", slot.StartTime.Format("15:04"), slot.EndTime.Format("15:04"))
	if slot.StudentID != nil {
		if name, ok := studentNames[*slot.StudentID]; ok && name != "" {
			label += " " + name
		}
	}
	dc.DrawStringAnchored(label, x+w/2, y+h/2, 0.5, 0.5)
}

func drawLegend(dc *gg.Context) {
	items := []struct {
		label string
		color color.Color
	}{
		{"free", slotFreeColor},
		{"booked", slotBookedColor},
		{"unpaid", slotUnpaidColor},
		{"travel", slotTravelColor},
	}

	x := float64(imageWidth - legendWidth + 10)
	y := float64(headerHeight + 10)
	for _, item := range items {
		dc.SetColor(item.color)
		dc.DrawRoundedRectangle(x, y, 16, 16, 3)
		dc.Fill()
		dc.SetColor(textColor)
		dc.DrawStringAnchored(item.label, x+24, y+8, 0, 0.5)
		y += 26
	}
}

func encode(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode week image: %w", err)
	}
	return buf.Bytes(), nil
}
