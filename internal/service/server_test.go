package service

import (
	"context"
	"errors"
	"testing"

	"sori/internal/domain"
	"sori/internal/domain/models"
	"sori/internal/domain/services"
)

func TestCreateServer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.prober.down["http://down.test"] = true

	res, err := f.servers.CreateServer(ctx, "alice", &services.CreateServerRequest{Name: "main", URL: "http://up.test"})
	wantOutcome(t, res, err, domain.OutcomeOK)

	t.Run("duplicate name is probed first", func(t *testing.T) {
		f.prober.probed = nil
		res, err := f.servers.CreateServer(ctx, "alice", &services.CreateServerRequest{Name: "main", URL: "http://up.test"})
		wantOutcome(t, res, err, domain.OutcomeAlreadyExists)
		if len(f.prober.probed) != 1 {
			t.Errorf("probed %v, want one probe", f.prober.probed)
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		_, err := f.servers.CreateServer(ctx, "alice", &services.CreateServerRequest{Name: "other", URL: "http://down.test"})
		if !errors.Is(err, services.ErrServerUnreachable) {
			t.Fatalf("error = %v, want ErrServerUnreachable", err)
		}
		if _, err := f.repos.Servers.GetByName(ctx, "alice", "other"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("unreachable server was stored: %v", err)
		}
	})

	t.Run("invalid url is not probed", func(t *testing.T) {
		f.prober.probed = nil
		_, err := f.servers.CreateServer(ctx, "alice", &services.CreateServerRequest{Name: "bad", URL: "not a url"})
		wantValidation(t, err, "url")
		if len(f.prober.probed) != 0 {
			t.Errorf("probed %v", f.prober.probed)
		}
	})
}

func TestServerOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.servers.CreateServer(ctx, "alice", &services.CreateServerRequest{Name: "main", URL: "http://up.test"})
	wantOutcome(t, created, err, domain.OutcomeOK)
	id := created.Value.ID

	get, err := f.servers.GetServer(ctx, "bob", id)
	wantOutcome(t, get, err, domain.OutcomeNotFound)

	upd, err := f.servers.UpdateServer(ctx, "bob", id, &services.UpdateServerRequest{URL: strPtr("http://other.test")})
	wantOutcome(t, upd, err, domain.OutcomeNoPermission)

	del, err := f.servers.DeleteServer(ctx, "bob", id)
	wantOutcome(t, del, err, domain.OutcomeNoPermission)

	upd, err = f.servers.UpdateServer(ctx, "alice", missingID, &services.UpdateServerRequest{URL: strPtr("http://other.test")})
	wantOutcome(t, upd, err, domain.OutcomeNotFound)

	get, err = f.servers.GetServer(ctx, "alice", id)
	wantOutcome(t, get, err, domain.OutcomeOK)
	if get.Value.URL != "http://up.test" {
		t.Errorf("url = %q, changed by a foreign update", get.Value.URL)
	}
}

func TestUpdateServerProbesChangedURL(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.prober.down["http://down.test"] = true
	created, err := f.servers.CreateServer(ctx, "alice", &services.CreateServerRequest{Name: "main", URL: "http://up.test"})
	wantOutcome(t, created, err, domain.OutcomeOK)
	id := created.Value.ID

	f.prober.probed = nil
	res, err := f.servers.UpdateServer(ctx, "alice", id, &services.UpdateServerRequest{URL: strPtr("http://up.test")})
	wantOutcome(t, res, err, domain.OutcomeOK)
	if len(f.prober.probed) != 0 {
		t.Errorf("unchanged url probed: %v", f.prober.probed)
	}

	if _, err := f.servers.UpdateServer(ctx, "alice", id, &services.UpdateServerRequest{URL: strPtr("http://down.test")}); !errors.Is(err, services.ErrServerUnreachable) {
		t.Fatalf("error = %v, want ErrServerUnreachable", err)
	}

	res, err = f.servers.UpdateServer(ctx, "alice", id, &services.UpdateServerRequest{URL: strPtr("http://moved.test")})
	wantOutcome(t, res, err, domain.OutcomeOK)
	if res.Value.URL != "http://moved.test" || res.Value.UpdatedAt == nil {
		t.Errorf("server = %+v", res.Value)
	}
}

func TestListServers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, name := range []string{"b", "a", "c"} {
		res, err := f.servers.CreateServer(ctx, "alice", &services.CreateServerRequest{Name: name, URL: "http://" + name + ".test"})
		wantOutcome(t, res, err, domain.OutcomeOK)
	}
	res, err := f.servers.CreateServer(ctx, "bob", &services.CreateServerRequest{Name: "z", URL: "http://z.test"})
	wantOutcome(t, res, err, domain.OutcomeOK)

	page, err := f.servers.ListServers(ctx, "alice", models.PageRequest{Limit: 10, SortBy: models.SortByName, OrderBy: models.OrderDesc})
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, s := range page.Items {
		names = append(names, s.Name)
	}
	if len(names) != 3 || names[0] != "c" || names[1] != "b" || names[2] != "a" {
		t.Errorf("names = %v, want [c b a]", names)
	}
	if page.Next != nil {
		t.Errorf("next = %v on a short page", *page.Next)
	}
}
