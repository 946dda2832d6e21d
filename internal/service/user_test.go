package service

import (
	"context"
	"testing"

	"sori/internal/domain"
	"sori/internal/domain/models"
	"sori/internal/domain/services"
	"sori/internal/httputil"
)

func TestPutUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	identity := &services.PutUserRequest{Email: "alice@example.com", Name: "Alice"}

	created, err := f.users.PutUser(ctx, identity, &models.Account{Provider: "google", ProviderAccountID: "g-1", AccessToken: strPtr("t1")})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == "" || created.Email != "alice@example.com" {
		t.Fatalf("created = %+v", created)
	}

	t.Run("same account returns the same user", func(t *testing.T) {
		again, err := f.users.PutUser(ctx, identity, &models.Account{Provider: "google", ProviderAccountID: "g-1", AccessToken: strPtr("t2")})
		if err != nil {
			t.Fatal(err)
		}
		if again.ID != created.ID {
			t.Errorf("user id = %q, want %q", again.ID, created.ID)
		}
	})

	t.Run("new provider with the same email links the account", func(t *testing.T) {
		linked, err := f.users.PutUser(ctx, identity, &models.Account{Provider: "github", ProviderAccountID: "gh-9"})
		if err != nil {
			t.Fatal(err)
		}
		if linked.ID != created.ID {
			t.Errorf("user id = %q, want %q", linked.ID, created.ID)
		}
		if linked.UpdatedAt == nil {
			t.Error("linking did not touch updatedAt")
		}
		byAccount, err := f.repos.Users.GetByAccount(ctx, "github", "gh-9")
		if err != nil || byAccount.ID != created.ID {
			t.Errorf("GetByAccount() = %v, %v", byAccount, err)
		}
	})

	t.Run("new email creates another user", func(t *testing.T) {
		bob, err := f.users.PutUser(ctx, &services.PutUserRequest{Email: "bob@example.com", Name: "Bob"}, &models.Account{Provider: "google", ProviderAccountID: "g-2"})
		if err != nil {
			t.Fatal(err)
		}
		if bob.ID == created.ID {
			t.Error("bob got alice's id")
		}
	})
}

func TestUpdateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, err := f.users.PutUser(ctx, &services.PutUserRequest{Email: "alice@example.com", Name: "Alice"}, &models.Account{Provider: "google", ProviderAccountID: "g-1"})
	if err != nil {
		t.Fatal(err)
	}

	res, err := f.users.UpdateUser(ctx, user.ID, &services.UpdateUserRequest{Name: strPtr("Alicia"), Image: httputil.Set("https://img.test/me.png")})
	wantOutcome(t, res, err, domain.OutcomeOK)
	if res.Value.Name != "Alicia" || res.Value.Image == nil || res.Value.Email != "alice@example.com" {
		t.Errorf("user = %+v", res.Value)
	}

	res, err = f.users.UpdateUser(ctx, user.ID, &services.UpdateUserRequest{Image: httputil.Null()})
	wantOutcome(t, res, err, domain.OutcomeOK)
	if res.Value.Image != nil || res.Value.Name != "Alicia" {
		t.Errorf("user = %+v", res.Value)
	}

	_, err = f.users.UpdateUser(ctx, user.ID, &services.UpdateUserRequest{Image: httputil.Set("not a url")})
	wantValidation(t, err, "image")

	res, err = f.users.UpdateUser(ctx, missingID, &services.UpdateUserRequest{Name: strPtr("x")})
	wantOutcome(t, res, err, domain.OutcomeNotFound)

	get, err := f.users.GetUser(ctx, missingID)
	wantOutcome(t, get, err, domain.OutcomeNotFound)
}
