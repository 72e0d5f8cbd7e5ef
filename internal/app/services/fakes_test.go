package services

// In-memory store fakes backing the service tests. Each fake mirrors the
// error contract of its repository counterpart so services see the same
// sentinels they would get from postgres constraints.

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/adeyemi/siwes-portal/internal/app/models"
	"github.com/adeyemi/siwes-portal/internal/pkg/apperrors"
)

type fakeUserStore struct {
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (f *fakeUserStore) sorted() []*models.User {
	out := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, user.Email) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return user.ID, nil
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) CountUsers(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserStore) UpdatePassword(ctx context.Context, userID int64, passwordHash string, mustChange bool) error {
	u, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Password = passwordHash
	u.MustChangePassword = mustChange
	return nil
}

func (f *fakeUserStore) SetActive(ctx context.Context, userID int64, active bool) error {
	u, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (f *fakeUserStore) UpdateProfile(ctx context.Context, userID int64, firstName, lastName string, imageURL *string) error {
	u, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.FirstName = firstName
	u.LastName = lastName
	if imageURL != nil {
		u.ImageURL = imageURL
	}
	return nil
}

func (f *fakeUserStore) UpdateLastLogin(ctx context.Context, userID int64) error {
	u, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	now := time.Now()
	u.LastLoginAt = &now
	return nil
}

func (f *fakeUserStore) ListUsers(ctx context.Context, role *models.RoleType, offset uint64, limit int) ([]*models.User, int64, error) {
	var filtered []*models.User
	for _, u := range f.sorted() {
		if role == nil || u.RoleType == *role {
			filtered = append(filtered, u)
		}
	}
	total := int64(len(filtered))
	if offset >= uint64(len(filtered)) {
		return nil, total, nil
	}
	end := int(offset) + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (f *fakeUserStore) ListActiveUserIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	for _, u := range f.sorted() {
		if u.IsActive {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

func (f *fakeUserStore) ListActiveUserIDsByRole(ctx context.Context, role models.RoleType) ([]int64, error) {
	var ids []int64
	for _, u := range f.sorted() {
		if u.IsActive && u.RoleType == role {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

func (f *fakeUserStore) ListActiveUsersByRole(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.sorted() {
		if u.IsActive && u.RoleType == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeStudentStore struct {
	nextID   int64
	students map[int64]*models.StudentProfile // keyed by user id
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[int64]*models.StudentProfile)}
}

func (f *fakeStudentStore) sorted() []*models.StudentProfile {
	out := make([]*models.StudentProfile, 0, len(f.students))
	for _, sp := range f.students {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

func (f *fakeStudentStore) CreateStudent(ctx context.Context, student *models.StudentProfile) error {
	for _, sp := range f.students {
		if sp.MatricNumber == student.MatricNumber {
			return apperrors.ErrMatricNumberExists
		}
	}
	f.nextID++
	student.ID = f.nextID
	f.students[student.UserID] = student
	return nil
}

func (f *fakeStudentStore) GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	sp, ok := f.students[userID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return sp, nil
}

func (f *fakeStudentStore) MatricNumberExists(ctx context.Context, matricNumber string) (bool, error) {
	for _, sp := range f.students {
		if sp.MatricNumber == matricNumber {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStudentStore) SetCompanyName(ctx context.Context, studentUserID int64, company string) error {
	sp, ok := f.students[studentUserID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	sp.CompanyName = company
	return nil
}

func (f *fakeStudentStore) SetIndustrySupervisor(ctx context.Context, studentUserID, supervisorID int64) error {
	sp, ok := f.students[studentUserID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	sp.IndustrySupervisorID = &supervisorID
	return nil
}

func (f *fakeStudentStore) SetSchoolSupervisor(ctx context.Context, studentUserID, supervisorID int64) error {
	sp, ok := f.students[studentUserID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	sp.SchoolSupervisorID = &supervisorID
	return nil
}

func (f *fakeStudentStore) ListByIndustrySupervisor(ctx context.Context, supervisorID int64) ([]*models.StudentProfile, error) {
	var out []*models.StudentProfile
	for _, sp := range f.sorted() {
		if sp.IndustrySupervisorID != nil && *sp.IndustrySupervisorID == supervisorID {
			out = append(out, sp)
		}
	}
	return out, nil
}

func (f *fakeStudentStore) ListBySchoolSupervisor(ctx context.Context, supervisorID int64) ([]*models.StudentProfile, error) {
	var out []*models.StudentProfile
	for _, sp := range f.sorted() {
		if sp.SchoolSupervisorID != nil && *sp.SchoolSupervisorID == supervisorID {
			out = append(out, sp)
		}
	}
	return out, nil
}

func (f *fakeStudentStore) ListUnassignedSchool(ctx context.Context, department string) ([]*models.StudentProfile, error) {
	var out []*models.StudentProfile
	for _, sp := range f.sorted() {
		if sp.SchoolSupervisorID != nil {
			continue
		}
		if department != "" && sp.Department != department {
			continue
		}
		out = append(out, sp)
	}
	return out, nil
}

func (f *fakeStudentStore) SchoolSupervisorLoads(ctx context.Context) (map[int64]int, error) {
	loads := make(map[int64]int)
	for _, sp := range f.students {
		if sp.SchoolSupervisorID != nil {
			loads[*sp.SchoolSupervisorID]++
		}
	}
	return loads, nil
}

func (f *fakeStudentStore) ListAll(ctx context.Context, offset uint64, limit int) ([]*models.StudentProfile, int64, error) {
	all := f.sorted()
	total := int64(len(all))
	if offset >= uint64(len(all)) {
		return nil, total, nil
	}
	end := int(offset) + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type fakeAttendanceStore struct {
	nextID  int64
	records []*models.AttendanceRecord
}

func (f *fakeAttendanceStore) Create(ctx context.Context, rec *models.AttendanceRecord) error {
	for _, existing := range f.records {
		if existing.StudentID == rec.StudentID && existing.Date.Equal(rec.Date) {
			return apperrors.ErrAttendanceExists
		}
	}
	f.nextID++
	rec.ID = f.nextID
	rec.CreatedAt = time.Now()
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeAttendanceStore) ListByStudent(ctx context.Context, studentID int64) ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	for _, rec := range f.records {
		if rec.StudentID == studentID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeAttendanceStore) GetByID(ctx context.Context, id int64) (*models.AttendanceRecord, error) {
	for _, rec := range f.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, apperrors.ErrAttendanceNotFound
}

func (f *fakeAttendanceStore) Update(ctx context.Context, id int64, present bool, notes *string) error {
	for _, rec := range f.records {
		if rec.ID == id {
			rec.Present = present
			rec.Notes = notes
			return nil
		}
	}
	return apperrors.ErrAttendanceNotFound
}

type fakeLogbookStore struct {
	nextID  int64
	entries []*models.LogbookEntry
}

func (f *fakeLogbookStore) Create(ctx context.Context, entry *models.LogbookEntry) error {
	for _, existing := range f.entries {
		if existing.StudentID == entry.StudentID && existing.Date.Equal(entry.Date) {
			return apperrors.ErrLogbookEntryExists
		}
	}
	f.nextID++
	entry.ID = f.nextID
	entry.CreatedAt = time.Now()
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeLogbookStore) ListByStudent(ctx context.Context, studentID int64) ([]*models.LogbookEntry, error) {
	var out []*models.LogbookEntry
	for _, entry := range f.entries {
		if entry.StudentID == studentID {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeLogbookStore) GetByID(ctx context.Context, id int64) (*models.LogbookEntry, error) {
	for _, entry := range f.entries {
		if entry.ID == id {
			return entry, nil
		}
	}
	return nil, apperrors.ErrLogbookEntryNotFound
}

func (f *fakeLogbookStore) Update(ctx context.Context, id int64, description string, imageURL *string) error {
	for _, entry := range f.entries {
		if entry.ID == id {
			if entry.Submitted {
				return apperrors.ErrAlreadySubmitted
			}
			entry.Description = description
			if imageURL != nil {
				entry.ImageURL = imageURL
			}
			return nil
		}
	}
	return apperrors.ErrLogbookEntryNotFound
}

func (f *fakeLogbookStore) MarkSubmitted(ctx context.Context, id int64) error {
	for _, entry := range f.entries {
		if entry.ID == id {
			if entry.Submitted {
				return apperrors.ErrAlreadySubmitted
			}
			entry.Submitted = true
			return nil
		}
	}
	return apperrors.ErrLogbookEntryNotFound
}

type fakeNotificationStore struct {
	nextID         int64
	nextDeliveryID int64
	notifications  map[int64]*models.Notification
	deliveries     []*models.UserNotification
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{notifications: make(map[int64]*models.Notification)}
}

func (f *fakeNotificationStore) CreateWithFanout(ctx context.Context, n *models.Notification, recipientIDs []int64) error {
	f.nextID++
	n.ID = f.nextID
	n.CreatedAt = time.Now()
	f.notifications[n.ID] = n
	for _, userID := range recipientIDs {
		f.nextDeliveryID++
		f.deliveries = append(f.deliveries, &models.UserNotification{
			ID:             f.nextDeliveryID,
			NotificationID: n.ID,
			UserID:         userID,
		})
	}
	return nil
}

func (f *fakeNotificationStore) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	n, ok := f.notifications[id]
	if !ok {
		return nil, apperrors.ErrNotificationNotFound
	}
	return n, nil
}

func (f *fakeNotificationStore) ListAll(ctx context.Context, offset uint64, limit int) ([]*models.Notification, int64, error) {
	all := make([]*models.Notification, 0, len(f.notifications))
	for _, n := range f.notifications {
		all = append(all, n)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if offset >= uint64(len(all)) {
		return nil, total, nil
	}
	end := int(offset) + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeNotificationStore) CountDeliveries(ctx context.Context, notificationID int64) (int64, error) {
	var count int64
	for _, d := range f.deliveries {
		if d.NotificationID == notificationID {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationStore) Update(ctx context.Context, id int64, title, body string) error {
	n, ok := f.notifications[id]
	if !ok {
		return apperrors.ErrNotificationNotFound
	}
	n.Title = title
	n.Body = body
	return nil
}

func (f *fakeNotificationStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.notifications[id]; !ok {
		return apperrors.ErrNotificationNotFound
	}
	delete(f.notifications, id)
	var kept []*models.UserNotification
	for _, d := range f.deliveries {
		if d.NotificationID != id {
			kept = append(kept, d)
		}
	}
	f.deliveries = kept
	return nil
}

func (f *fakeNotificationStore) Stats(ctx context.Context) (int64, int64, int64, error) {
	var read int64
	for _, d := range f.deliveries {
		if d.IsRead {
			read++
		}
	}
	return int64(len(f.notifications)), int64(len(f.deliveries)), read, nil
}

func (f *fakeNotificationStore) ListForUser(ctx context.Context, userID int64) ([]*models.UserNotification, error) {
	var out []*models.UserNotification
	for _, d := range f.deliveries {
		if d.UserID == userID {
			cp := *d
			cp.Notification = f.notifications[d.NotificationID]
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeNotificationStore) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	for _, d := range f.deliveries {
		if d.UserID == userID && !d.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationStore) MarkRead(ctx context.Context, userID, userNotificationID int64) error {
	for _, d := range f.deliveries {
		if d.ID == userNotificationID && d.UserID == userID {
			d.IsRead = true
			if d.ReadAt == nil {
				now := time.Now()
				d.ReadAt = &now
			}
			return nil
		}
	}
	return apperrors.ErrNotificationNotFound
}

type fakeTokenStore struct {
	blacklisted map[string]time.Time
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{blacklisted: make(map[string]time.Time)}
}

func (f *fakeTokenStore) Blacklist(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	f.blacklisted[token] = expiresAt
	return nil
}

func (f *fakeTokenStore) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	_, ok := f.blacklisted[token]
	return ok, nil
}

func (f *fakeTokenStore) CleanupExpired(ctx context.Context) (int64, error) {
	var removed int64
	for token, expiresAt := range f.blacklisted {
		if expiresAt.Before(time.Now()) {
			delete(f.blacklisted, token)
			removed++
		}
	}
	return removed, nil
}

type sentNotification struct {
	userID int64
	title  string
	body   string
}

// recordingNotifier captures system notifications instead of persisting them.
type recordingNotifier struct {
	sent []sentNotification
}

func (r *recordingNotifier) CreateSystem(ctx context.Context, userID int64, title, body string) error {
	r.sent = append(r.sent, sentNotification{userID: userID, title: title, body: body})
	return nil
}

func addUser(store *fakeUserStore, email string, role models.RoleType) *models.User {
	user := &models.User{
		Email:     email,
		Password:  "hashed",
		FirstName: "Test",
		LastName:  string(role),
		RoleType:  role,
		IsActive:  true,
	}
	store.CreateUser(context.Background(), user)
	return user
}

func addStudent(users *fakeUserStore, students *fakeStudentStore, email, matric, department string) *models.StudentProfile {
	user := addUser(users, email, models.RoleStudent)
	student := &models.StudentProfile{
		UserID:       user.ID,
		MatricNumber: matric,
		Department:   department,
		User:         user,
	}
	students.CreateStudent(context.Background(), student)
	return student
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }
