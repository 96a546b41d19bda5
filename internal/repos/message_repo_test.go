package repos_test

import (
	"testing"

	"feedsoko/internal/domain"
	"feedsoko/internal/repos"
)

// Unread badge scenario: three messages to the farmer, one conversation
// marked read, badge shows the remaining two.
func TestUnreadCount(t *testing.T) {
	db := opendb(t)
	users := repos.NewUserRepo(db)
	messages := repos.NewMessageRepo(db)

	farmer := seededFarmer(t, users)
	other := seededFarmer2(t, users)
	seller, _ := users.ByUsername("pembe_feeds")

	send := func(from, to int64, body string) {
		t.Helper()
		if _, err := messages.Create(&domain.Message{
			SenderID: from, ReceiverID: to, Content: body, MessageType: domain.MessageText,
		}); err != nil {
			t.Fatal(err)
		}
	}
	send(seller.ID, farmer.ID, "Your layers mash ships tomorrow")
	send(seller.ID, farmer.ID, "Dispatched via courier")
	send(other.ID, farmer.ID, "Do you have extra chick feeders?")

	n, err := messages.UnreadCount(farmer.ID)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("want 3 unread, got %d", n)
	}

	changed, err := messages.MarkRead(other.ID, farmer.ID)
	if err != nil || !changed {
		t.Fatalf("mark read: changed=%v err=%v", changed, err)
	}

	n, err = messages.UnreadCount(farmer.ID)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("want 2 unread after reading one conversation, got %d", n)
	}
}

func TestConversationOrderedBothDirections(t *testing.T) {
	db := opendb(t)
	users := repos.NewUserRepo(db)
	messages := repos.NewMessageRepo(db)

	farmer := seededFarmer(t, users)
	seller, _ := users.ByUsername("pembe_feeds")

	for i, m := range []struct {
		from, to int64
		body     string
	}{
		{farmer.ID, seller.ID, "Is dairy meal in stock?"},
		{seller.ID, farmer.ID, "Yes, 80 bags"},
		{farmer.ID, seller.ID, "I'll take five"},
	} {
		if _, err := messages.Create(&domain.Message{
			SenderID: m.from, ReceiverID: m.to, Content: m.body, MessageType: domain.MessageText,
		}); err != nil {
			t.Fatalf("msg %d: %v", i, err)
		}
	}

	thread, err := messages.Between(farmer.ID, seller.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(thread) != 3 {
		t.Fatalf("want 3 messages, got %d", len(thread))
	}
	if thread[0].Content != "Is dairy meal in stock?" || thread[2].Content != "I'll take five" {
		t.Fatalf("thread out of order: %+v", thread)
	}

	// inbox shows the same messages for either side
	inbox, err := messages.AllForUser(seller.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(inbox) != 3 {
		t.Fatalf("want 3 inbox entries, got %d", len(inbox))
	}
}

func TestMarkReadNoMatchesReportsFalse(t *testing.T) {
	db := opendb(t)
	messages := repos.NewMessageRepo(db)

	changed, err := messages.MarkRead(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Fatal("no unread messages, expected false")
	}
}

func seededFarmer2(t *testing.T, users *repos.UserRepo) *domain.User {
	t.Helper()
	f, err := users.ByUsername("okello_poultry")
	if err != nil || f == nil {
		t.Fatalf("seed farmer missing: %v", err)
	}
	return f
}
