package api

import (
	"encoding/json"
)

// Envelope is the {code, msg, data} wrapper every backend response uses
type Envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// UserType is the role a user logs in as
type UserType string

const (
	UserTypeStudent UserType = "student"
	UserTypeTeacher UserType = "teacher"
	UserTypeAdmin   UserType = "admin"
)

// UserTypes lists the accepted login roles in display order
var UserTypes = []UserType{UserTypeStudent, UserTypeTeacher, UserTypeAdmin}

// Profile is the user block returned at login
type Profile struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	UserType  UserType `json:"user_type" yaml:"user_type"`
	LabID     *int64   `json:"lab_id,omitempty" yaml:"lab_id,omitempty"`
	Dept      string   `json:"dept,omitempty" yaml:"dept,omitempty"`
	TeacherID string   `json:"t_id,omitempty" yaml:"t_id,omitempty"`
}

// LoginInput is the POST /auth/login body
type LoginInput struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	UserType UserType `json:"user_type"`
}

// LoginResult is the data block of a successful login
type LoginResult struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// HealthStatus is the /health payload (not wrapped in an envelope)
type HealthStatus struct {
	Status  string `json:"status" yaml:"status"`
	Version string `json:"version" yaml:"version"`
}

// Laboratory represents a laboratory
type Laboratory struct {
	ID       int64  `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
}

// LaboratoryInput is the create/update body for a laboratory
type LaboratoryInput struct {
	Name     string  `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
}

// EquipmentCategory distinguishes college-owned from laboratory-owned equipment
type EquipmentCategory int

const (
	CategoryCollege    EquipmentCategory = 1
	CategoryLaboratory EquipmentCategory = 2
)

func (c EquipmentCategory) String() string {
	switch c {
	case CategoryCollege:
		return "college"
	case CategoryLaboratory:
		return "laboratory"
	default:
		return "unknown"
	}
}

// Equipment represents a piece of bookable equipment
type Equipment struct {
	ID            int64             `json:"id" yaml:"id"`
	Name          string            `json:"name" yaml:"name"`
	LabID         *int64            `json:"lab_id,omitempty" yaml:"lab_id,omitempty"`
	LabName       string            `json:"lab_name,omitempty" yaml:"lab_name,omitempty"`
	Category      EquipmentCategory `json:"category" yaml:"category"`
	Status        EquipmentStatus   `json:"status" yaml:"status"`
	NextAvailTime *Timestamp        `json:"next_avail_time,omitempty" yaml:"next_avail_time,omitempty"`
}

// EquipmentStatus is the bookable flag of a piece of equipment; 1 means available
type EquipmentStatus int

const (
	EquipmentUnavailable EquipmentStatus = 0
	EquipmentAvailable   EquipmentStatus = 1
)

func (s EquipmentStatus) String() string {
	if s == EquipmentAvailable {
		return "available"
	}
	return "unavailable"
}

// Label is the console wording for the status
func (s EquipmentStatus) Label() string {
	if s == EquipmentAvailable {
		return "可预约"
	}
	return "不可用"
}

// EquipmentInput is the create/update body for equipment.
// Pointer fields are omitted when nil so updates stay partial.
type EquipmentInput struct {
	Name     string             `json:"name,omitempty"`
	LabID    *int64             `json:"lab_id,omitempty"`
	Category *EquipmentCategory `json:"category,omitempty"`
	Status   *int               `json:"status,omitempty"`
}

// TopEquipment is one row of the usage ranking
type TopEquipment struct {
	ID    int64  `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// ReservationStatus follows the backend state machine
type ReservationStatus int

const (
	ReservationPending   ReservationStatus = 0
	ReservationApproved  ReservationStatus = 1
	ReservationRejected  ReservationStatus = 2
	ReservationCancelled ReservationStatus = 3
)

func (s ReservationStatus) String() string {
	switch s {
	case ReservationPending:
		return "pending"
	case ReservationApproved:
		return "approved"
	case ReservationRejected:
		return "rejected"
	case ReservationCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Reservation represents an equipment reservation
type Reservation struct {
	ID           int64             `json:"id" yaml:"id"`
	StudentID    string            `json:"student_id,omitempty" yaml:"student_id,omitempty"`
	TeacherID    string            `json:"teacher_id,omitempty" yaml:"teacher_id,omitempty"`
	EquipID      int64             `json:"equip_id" yaml:"equip_id"`
	Status       ReservationStatus `json:"status" yaml:"status"`
	ApplyTime    *Timestamp        `json:"apply_time,omitempty" yaml:"apply_time,omitempty"`
	ApproverID   string            `json:"approver_id,omitempty" yaml:"approver_id,omitempty"`
	ApproveTime  *Timestamp        `json:"approve_time,omitempty" yaml:"approve_time,omitempty"`
	UserName     string            `json:"user_name,omitempty" yaml:"user_name,omitempty"`
	EquipName    string            `json:"equip_name,omitempty" yaml:"equip_name,omitempty"`
	Price        json.Number       `json:"price,omitempty" yaml:"price,omitempty"`
	StartTime    *Timestamp        `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	EndTime      *Timestamp        `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	Description  string            `json:"description,omitempty" yaml:"description,omitempty"`
	RejectReason string            `json:"reject_reason,omitempty" yaml:"reject_reason,omitempty"`
}

// ReservationInput is the POST /reservations/ body
type ReservationInput struct {
	EquipID     int64   `json:"equip_id"`
	Price       *string `json:"price,omitempty"`
	StartTime   string  `json:"start_time,omitempty"`
	EndTime     string  `json:"end_time,omitempty"`
	Description string  `json:"description,omitempty"`
}

// ApprovalInput is the approve/reject body; Reason is only meaningful for rejections
type ApprovalInput struct {
	Reason string `json:"reason,omitempty"`
}

// TimeSlot is a bookable daily window for one piece of equipment.
// Times are wall-clock HH:MM:SS strings as the backend sends them.
type TimeSlot struct {
	SlotID    int64  `json:"slot_id" yaml:"slot_id"`
	EquipID   int64  `json:"equip_id" yaml:"equip_id"`
	StartTime string `json:"start_time" yaml:"start_time"`
	EndTime   string `json:"end_time" yaml:"end_time"`
	IsActive  int    `json:"is_active" yaml:"is_active"`
}

// TimeSlotInput is the admin create/update body for a time slot
type TimeSlotInput struct {
	EquipID   int64  `json:"equip_id,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	IsActive  *int   `json:"is_active,omitempty"`
}

// AuditLog is one recorded operation
type AuditLog struct {
	ID         int64      `json:"id" yaml:"id"`
	OperatorID string     `json:"operator_id" yaml:"operator_id"`
	ActionTime *Timestamp `json:"action_time,omitempty" yaml:"action_time,omitempty"`
	ActionType string     `json:"action_type" yaml:"action_type"`
	Detail     string     `json:"detail,omitempty" yaml:"detail,omitempty"`
	IPAddress  string     `json:"ip_address,omitempty" yaml:"ip_address,omitempty"`
}

// AuditLogPage is the paginated audit log list
type AuditLogPage struct {
	Items []AuditLog `json:"items" yaml:"items"`
	Total int        `json:"total" yaml:"total"`
}

// AuditLogStatistics aggregates audit logs
type AuditLogStatistics struct {
	TotalLogs     int              `json:"total_logs" yaml:"total_logs"`
	TodayLogs     int              `json:"today_logs" yaml:"today_logs"`
	ActionStats   []map[string]int `json:"action_stats,omitempty" yaml:"action_stats,omitempty"`
	OperatorStats []map[string]int `json:"operator_stats,omitempty" yaml:"operator_stats,omitempty"`
}

// Statistics is the platform-wide /admin/statistics payload
type Statistics struct {
	Equipment   EquipmentStatistics   `json:"equipment" yaml:"equipment"`
	Reservation ReservationStatistics `json:"reservation" yaml:"reservation"`
	User        UserStatistics        `json:"user" yaml:"user"`
	Timestamp   string                `json:"timestamp" yaml:"timestamp"`
}

// EquipmentStatistics summarizes equipment availability
type EquipmentStatistics struct {
	Total                     int            `json:"total" yaml:"total"`
	Available                 int            `json:"available" yaml:"available"`
	Unavailable               int            `json:"unavailable" yaml:"unavailable"`
	UsageRate                 float64        `json:"usage_rate" yaml:"usage_rate"`
	EquipmentWithReservations int            `json:"equipment_with_reservations" yaml:"equipment_with_reservations"`
	StatusDistribution        map[string]int `json:"status_distribution,omitempty" yaml:"status_distribution,omitempty"`
	CategoryDistribution      map[string]int `json:"category_distribution,omitempty" yaml:"category_distribution,omitempty"`
}

// ReservationStatistics summarizes reservation outcomes
type ReservationStatistics struct {
	Total         int          `json:"total" yaml:"total"`
	Pending       int          `json:"pending" yaml:"pending"`
	Approved      int          `json:"approved" yaml:"approved"`
	Rejected      int          `json:"rejected" yaml:"rejected"`
	Cancelled     int          `json:"cancelled" yaml:"cancelled"`
	ApprovalRate  float64      `json:"approval_rate" yaml:"approval_rate"`
	RejectionRate float64      `json:"rejection_rate" yaml:"rejection_rate"`
	DailyTrend    []DailyCount `json:"daily_trend,omitempty" yaml:"daily_trend,omitempty"`
}

// DailyCount is one point of a daily trend
type DailyCount struct {
	Date  string `json:"date" yaml:"date"`
	Count int    `json:"count" yaml:"count"`
}

// UserStatistics counts users per role
type UserStatistics struct {
	Total    int `json:"total" yaml:"total"`
	Students int `json:"students" yaml:"students"`
	Teachers int `json:"teachers" yaml:"teachers"`
	Admins   int `json:"admins" yaml:"admins"`
}
