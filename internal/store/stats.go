package store

import (
	"context"
	"fmt"
	"time"

	"github.com/retshidi-radebe/bzfitness/internal/model"
)

// DayLayout is the format of Attendance.Day and DayStats.Date.
const DayLayout = "2006-01-02"

// WeeklyStats returns attendance and revenue for the seven calendar days
// ending on today's date, oldest first. Days are taken in today's location.
func (s *Store) WeeklyStats(ctx context.Context, today time.Time) ([]model.DayStats, error) {
	loc := today.Location()
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -6)

	days := make([]model.DayStats, 7)
	index := make(map[string]int, 7)
	for i := range days {
		d := start.AddDate(0, 0, i)
		days[i] = model.DayStats{Day: d.Format("Mon"), Date: d.Format(DayLayout)}
		index[days[i].Date] = i
	}

	counts, err := s.CountAttendanceByDay(ctx, days[0].Date, days[6].Date)
	if err != nil {
		return nil, err
	}
	for _, c := range counts {
		i, ok := index[c.Day]
		if !ok {
			continue
		}
		switch c.TimeSlot {
		case model.TimeSlotMorning:
			days[i].Morning += c.Count
		case model.TimeSlotEvening:
			days[i].Evening += c.Count
		}
		days[i].Total += c.Count
	}

	paid, err := s.PaidSince(ctx, start)
	if err != nil {
		return nil, err
	}
	for _, p := range paid {
		if p.PaidDate == nil {
			continue
		}
		if i, ok := index[p.PaidDate.In(loc).Format(DayLayout)]; ok {
			days[i].Revenue += p.Amount
		}
	}
	return days, nil
}

// DashboardStats summarizes members, today's attendance, payments and new
// enquiries. now's location decides which calendar day is "today".
func (s *Store) DashboardStats(ctx context.Context, now time.Time) (*model.DashboardStats, error) {
	st := &model.DashboardStats{}

	var members []struct {
		Status string `db:"status"`
		N      int    `db:"n"`
	}
	if err := s.db.SelectContext(ctx, &members, "SELECT status, COUNT(*) AS n FROM members GROUP BY status"); err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}
	for _, m := range members {
		st.TotalMembers += m.N
		if m.Status == model.MemberActive {
			st.ActiveMembers += m.N
		}
	}
	st.InactiveMembers = st.TotalMembers - st.ActiveMembers

	today := now.Format(DayLayout)
	counts, err := s.CountAttendanceByDay(ctx, today, today)
	if err != nil {
		return nil, err
	}
	for _, c := range counts {
		st.TodayAttendance += c.Count
		switch c.TimeSlot {
		case model.TimeSlotMorning:
			st.MorningAttendance += c.Count
		case model.TimeSlotEvening:
			st.EveningAttendance += c.Count
		}
	}

	payments, err := s.ListPayments(ctx, PaymentFilter{Now: now})
	if err != nil {
		return nil, err
	}
	st.TotalPayments = len(payments)
	for _, p := range payments {
		switch p.Status {
		case model.PaymentPaid:
			st.PaidPayments++
			st.TotalRevenue += p.Amount
		case model.PaymentPending:
			st.PendingPayments++
		}
		if p.IsOverdue {
			st.OverduePayments++
		}
	}

	q := s.db.Rebind("SELECT COUNT(*) FROM contact_submissions WHERE status = ?")
	if err := s.db.GetContext(ctx, &st.NewContacts, q, model.ContactNew); err != nil {
		return nil, fmt.Errorf("count contacts: %w", err)
	}
	return st, nil
}
