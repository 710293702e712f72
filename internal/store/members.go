package store

import (
	"context"
	"fmt"

	"github.com/retshidi-radebe/bzfitness/internal/model"
)

// memberColumns lists every members column in insert order.
const memberColumns = `id, name, phone, email, date_of_birth, gender, address,
	emergency_contact_name, emergency_contact_phone, emergency_contact_relation,
	medical_conditions, injuries, package_type, status, join_date, next_payment_date,
	agreed_to_terms, agreed_at, created_at, updated_at`

// CreateMember inserts m, filling in ID, CreatedAt and UpdatedAt.
func (s *Store) CreateMember(ctx context.Context, m *model.Member) error {
	t := now()
	m.ID = newID()
	m.CreatedAt = t
	m.UpdatedAt = t
	normalizeMemberTimes(m)
	return s.insertMember(ctx, s.db, m)
}

func (s *Store) insertMember(ctx context.Context, ext namedExecer, m *model.Member) error {
	const q = `INSERT INTO members (` + memberColumns + `) VALUES (
		:id, :name, :phone, :email, :date_of_birth, :gender, :address,
		:emergency_contact_name, :emergency_contact_phone, :emergency_contact_relation,
		:medical_conditions, :injuries, :package_type, :status, :join_date, :next_payment_date,
		:agreed_to_terms, :agreed_at, :created_at, :updated_at)`
	if _, err := ext.NamedExecContext(ctx, q, m); err != nil {
		return s.wrap("insert member", err)
	}
	return nil
}

// GetMember returns the member with the given id.
func (s *Store) GetMember(ctx context.Context, id string) (*model.Member, error) {
	var m model.Member
	q := s.db.Rebind("SELECT * FROM members WHERE id = ?")
	if err := s.db.GetContext(ctx, &m, q, id); err != nil {
		return nil, notFound("get member", err)
	}
	return &m, nil
}

// RecentAttendanceLimit caps the attendance history returned with a member.
const RecentAttendanceLimit = 10

// GetMemberDetail returns the member with its most recent attendance and
// every payment, newest due date first.
func (s *Store) GetMemberDetail(ctx context.Context, id string) (*model.MemberDetail, error) {
	m, err := s.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &model.MemberDetail{Member: *m, Attendances: []model.Attendance{}, Payments: []model.Payment{}}

	q := s.db.Rebind(fmt.Sprintf(
		"SELECT * FROM attendance WHERE member_id = ? ORDER BY date DESC LIMIT %d", RecentAttendanceLimit))
	if err := s.db.SelectContext(ctx, &detail.Attendances, q, id); err != nil {
		return nil, fmt.Errorf("member attendance: %w", err)
	}

	q = s.db.Rebind("SELECT * FROM payments WHERE member_id = ? ORDER BY due_date DESC")
	if err := s.db.SelectContext(ctx, &detail.Payments, q, id); err != nil {
		return nil, fmt.Errorf("member payments: %w", err)
	}
	return detail, nil
}

// ListMembers returns every member, newest first, with attendance and
// payment counts.
func (s *Store) ListMembers(ctx context.Context) ([]model.MemberSummary, error) {
	const q = `SELECT m.*,
		(SELECT COUNT(*) FROM attendance a WHERE a.member_id = m.id) AS attendance_count,
		(SELECT COUNT(*) FROM payments p WHERE p.member_id = m.id) AS payment_count
		FROM members m
		ORDER BY m.created_at DESC, m.id DESC`

	members := []model.MemberSummary{}
	if err := s.db.SelectContext(ctx, &members, q); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// UpdateMember overwrites every editable column of m and refreshes
// UpdatedAt.
func (s *Store) UpdateMember(ctx context.Context, m *model.Member) error {
	m.UpdatedAt = now()
	normalizeMemberTimes(m)

	const q = `UPDATE members SET
		name = :name, phone = :phone, email = :email, date_of_birth = :date_of_birth,
		gender = :gender, address = :address,
		emergency_contact_name = :emergency_contact_name,
		emergency_contact_phone = :emergency_contact_phone,
		emergency_contact_relation = :emergency_contact_relation,
		medical_conditions = :medical_conditions, injuries = :injuries,
		package_type = :package_type, status = :status, join_date = :join_date,
		next_payment_date = :next_payment_date, agreed_to_terms = :agreed_to_terms,
		agreed_at = :agreed_at, updated_at = :updated_at
		WHERE id = :id`

	res, err := s.db.NamedExecContext(ctx, q, m)
	if err != nil {
		return s.wrap("update member", err)
	}
	return affectedOne("update member", res)
}

// DeleteMember removes a member. Attendance, payments and progress rows
// are removed by ON DELETE CASCADE.
func (s *Store) DeleteMember(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM members WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return affectedOne("delete member", res)
}

func normalizeMemberTimes(m *model.Member) {
	m.JoinDate = m.JoinDate.UTC()
	m.DateOfBirth = utcPtr(m.DateOfBirth)
	m.NextPaymentDate = utcPtr(m.NextPaymentDate)
	m.AgreedAt = utcPtr(m.AgreedAt)
}
