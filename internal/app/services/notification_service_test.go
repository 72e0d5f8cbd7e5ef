package services

import (
	"context"
	"errors"
	"testing"

	"github.com/adeyemi/siwes-portal/internal/app/models"
	"github.com/adeyemi/siwes-portal/internal/app/models/dto"
	"github.com/adeyemi/siwes-portal/internal/pkg/apperrors"
)

func newNotificationFixture() (*NotificationService, *fakeUserStore, *fakeNotificationStore) {
	users := newFakeUserStore()
	store := newFakeNotificationStore()
	return NewNotificationService(store, users), users, store
}

func TestCreateNotificationFanout(t *testing.T) {
	service, users, store := newNotificationFixture()
	admin := addUser(users, "admin@school.edu", models.RoleAdmin)
	studentA := addUser(users, "a@school.edu", models.RoleStudent)
	addUser(users, "b@school.edu", models.RoleStudent)
	inactive := addUser(users, "gone@school.edu", models.RoleStudent)
	users.SetActive(context.Background(), inactive.ID, false)

	// ALL reaches every active user, inactive accounts excluded.
	n, delivered, err := service.Create(context.Background(), admin.ID, dto.CreateNotificationRequest{
		Title:         "Orientation",
		Body:          "Placement orientation holds on Friday.",
		RecipientType: "ALL",
	})
	if err != nil {
		t.Fatalf("Create(ALL) error = %v", err)
	}
	if delivered != 3 {
		t.Errorf("Create(ALL) delivered = %d, want 3 active users", delivered)
	}
	if n.CreatedBy == nil || *n.CreatedBy != admin.ID {
		t.Errorf("Create(ALL) createdBy = %v", n.CreatedBy)
	}

	// ROLE reaches active users of that role only.
	_, delivered, err = service.Create(context.Background(), admin.ID, dto.CreateNotificationRequest{
		Title:         "Logbooks due",
		Body:          "Submit outstanding entries.",
		RecipientType: "ROLE",
		Role:          "STUDENT",
	})
	if err != nil {
		t.Fatalf("Create(ROLE) error = %v", err)
	}
	if delivered != 2 {
		t.Errorf("Create(ROLE STUDENT) delivered = %d, want 2", delivered)
	}

	// USER reaches exactly one account.
	_, delivered, err = service.Create(context.Background(), admin.ID, dto.CreateNotificationRequest{
		Title:         "Direct",
		Body:          "See me after the defense.",
		RecipientType: "USER",
		RecipientID:   studentA.ID,
	})
	if err != nil {
		t.Fatalf("Create(USER) error = %v", err)
	}
	if delivered != 1 {
		t.Errorf("Create(USER) delivered = %d, want 1", delivered)
	}

	if len(store.deliveries) != 6 {
		t.Errorf("total deliveries = %d, want 6", len(store.deliveries))
	}
}

func TestCreateNotificationValidation(t *testing.T) {
	service, users, _ := newNotificationFixture()
	admin := addUser(users, "admin@school.edu", models.RoleAdmin)

	_, _, err := service.Create(context.Background(), admin.ID, dto.CreateNotificationRequest{
		Title:         "Bad role",
		Body:          "x",
		RecipientType: "ROLE",
		Role:          "JANITOR",
	})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("Create() with unknown role error = %v, want ErrBadRequest", err)
	}

	_, _, err = service.Create(context.Background(), admin.ID, dto.CreateNotificationRequest{
		Title:         "Ghost",
		Body:          "x",
		RecipientType: "USER",
		RecipientID:   999,
	})
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("Create() with unknown recipient error = %v, want ErrUserNotFound", err)
	}
}

func TestCreateNotificationInactiveRecipient(t *testing.T) {
	service, users, store := newNotificationFixture()
	admin := addUser(users, "admin@school.edu", models.RoleAdmin)
	disabled := addUser(users, "gone@school.edu", models.RoleStudent)
	users.SetActive(context.Background(), disabled.ID, false)

	// A disabled account is no more reachable directly than through ALL/ROLE.
	_, _, err := service.Create(context.Background(), admin.ID, dto.CreateNotificationRequest{
		Title:         "Direct",
		Body:          "x",
		RecipientType: "USER",
		RecipientID:   disabled.ID,
	})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("Create() targeting an inactive user error = %v, want ErrBadRequest", err)
	}
	if len(store.deliveries) != 0 {
		t.Errorf("Create() targeting an inactive user left %d deliveries, want 0", len(store.deliveries))
	}
}

func TestSystemNotificationImmutable(t *testing.T) {
	service, users, _ := newNotificationFixture()
	student := addUser(users, "student@school.edu", models.RoleStudent)

	if err := service.CreateSystem(context.Background(), student.ID, "Supervisor assigned", "You have a supervisor."); err != nil {
		t.Fatalf("CreateSystem() error = %v", err)
	}

	notifications, _, err := service.ListAll(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(notifications) != 1 || !notifications[0].IsSystem {
		t.Fatalf("ListAll() = %+v, want one system notification", notifications)
	}
	id := notifications[0].ID

	if _, err := service.Update(context.Background(), id, dto.UpdateNotificationRequest{Title: "Edited", Body: "x"}); !errors.Is(err, apperrors.ErrSystemNotification) {
		t.Errorf("Update() system notification error = %v, want ErrSystemNotification", err)
	}
	if err := service.Delete(context.Background(), id); !errors.Is(err, apperrors.ErrSystemNotification) {
		t.Errorf("Delete() system notification error = %v, want ErrSystemNotification", err)
	}
}

func TestUpdateAndDeleteNotification(t *testing.T) {
	service, users, _ := newNotificationFixture()
	admin := addUser(users, "admin@school.edu", models.RoleAdmin)

	n, _, err := service.Create(context.Background(), admin.ID, dto.CreateNotificationRequest{
		Title:         "Draft",
		Body:          "x",
		RecipientType: "ALL",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := service.Update(context.Background(), n.ID, dto.UpdateNotificationRequest{Title: "Final", Body: "y"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "Final" || updated.Body != "y" {
		t.Errorf("Update() = %+v", updated)
	}

	if err := service.Delete(context.Background(), n.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, _, err := service.Get(context.Background(), n.ID); !errors.Is(err, apperrors.ErrNotificationNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotificationNotFound", err)
	}
}

func TestMarkReadIdempotent(t *testing.T) {
	service, users, store := newNotificationFixture()
	student := addUser(users, "student@school.edu", models.RoleStudent)
	other := addUser(users, "other@school.edu", models.RoleStudent)

	if err := service.CreateSystem(context.Background(), student.ID, "Hello", "Welcome."); err != nil {
		t.Fatalf("CreateSystem() error = %v", err)
	}
	deliveryID := store.deliveries[0].ID

	// Another user cannot mark someone else's delivery.
	if err := service.MarkRead(context.Background(), other.ID, deliveryID); !errors.Is(err, apperrors.ErrNotificationNotFound) {
		t.Errorf("MarkRead() by wrong user error = %v, want ErrNotificationNotFound", err)
	}

	if err := service.MarkRead(context.Background(), student.ID, deliveryID); err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	firstReadAt := store.deliveries[0].ReadAt
	if firstReadAt == nil {
		t.Fatal("MarkRead() did not stamp readAt")
	}

	// Marking again keeps the original timestamp.
	if err := service.MarkRead(context.Background(), student.ID, deliveryID); err != nil {
		t.Fatalf("MarkRead() second call error = %v", err)
	}
	if store.deliveries[0].ReadAt != firstReadAt {
		t.Errorf("MarkRead() second call changed readAt")
	}

	unread, err := store.UnreadCount(context.Background(), student.ID)
	if err != nil {
		t.Fatalf("UnreadCount() error = %v", err)
	}
	if unread != 0 {
		t.Errorf("UnreadCount() = %d, want 0", unread)
	}
}

func TestNotificationStats(t *testing.T) {
	service, users, store := newNotificationFixture()
	admin := addUser(users, "admin@school.edu", models.RoleAdmin)
	addUser(users, "a@school.edu", models.RoleStudent)
	addUser(users, "b@school.edu", models.RoleStudent)
	addUser(users, "c@school.edu", models.RoleStudent)

	if _, _, err := service.Create(context.Background(), admin.ID, dto.CreateNotificationRequest{
		Title:         "Broadcast",
		Body:          "x",
		RecipientType: "ALL",
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Read three of the four deliveries.
	for _, d := range store.deliveries[:3] {
		if err := service.MarkRead(context.Background(), d.UserID, d.ID); err != nil {
			t.Fatalf("MarkRead() error = %v", err)
		}
	}

	stats, err := service.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalNotifications != 1 || stats.TotalDeliveries != 4 || stats.TotalRead != 3 {
		t.Errorf("Stats() = %+v", stats)
	}
	if stats.ReadRate != 75 {
		t.Errorf("Stats() readRate = %v, want 75", stats.ReadRate)
	}
}

func TestListForUser(t *testing.T) {
	service, users, _ := newNotificationFixture()
	admin := addUser(users, "admin@school.edu", models.RoleAdmin)
	student := addUser(users, "student@school.edu", models.RoleStudent)

	if _, _, err := service.Create(context.Background(), admin.ID, dto.CreateNotificationRequest{
		Title:         "Broadcast",
		Body:          "x",
		RecipientType: "ALL",
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := service.CreateSystem(context.Background(), student.ID, "Direct", "y"); err != nil {
		t.Fatalf("CreateSystem() error = %v", err)
	}

	deliveries, unread, err := service.ListForUser(context.Background(), student.ID)
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if len(deliveries) != 2 || unread != 2 {
		t.Fatalf("ListForUser() = %d deliveries, %d unread", len(deliveries), unread)
	}
	// Newest first, with the notification loaded for rendering.
	if deliveries[0].Notification == nil || deliveries[0].Notification.Title != "Direct" {
		t.Errorf("ListForUser() first delivery = %+v, want the newest with its notification", deliveries[0])
	}
}
