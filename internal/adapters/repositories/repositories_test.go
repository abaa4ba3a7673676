package repositories

import (
	"context"
	"os"
	"parcel-tracking-service/internal/domain"
	"path/filepath"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/zoobzio/clockz"
)

func writeSeedFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parcels.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestLoadSeedsMapsPendingToBooked(t *testing.T) {
	path := writeSeedFile(t, `[
		{"tracking_id": "TRK1002", "recipient": "Jane Smith", "destination": "Los Angeles, CA", "status": "Pending"},
		{"tracking_id": "TRK1003", "recipient": "Bob Johnson", "destination": "Chicago, IL", "status": "delivered", "delay_risk": "Low"}
	]`)

	parcels, err := LoadSeeds(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parcels) != 2 {
		t.Fatalf("got %d parcels, want 2", len(parcels))
	}
	if parcels[0].Status != domain.StatusBooked {
		t.Fatalf("pending status = %q, want Booked", parcels[0].Status)
	}
	if parcels[0].DelayRisk != domain.RiskLow {
		t.Fatalf("default risk = %q, want Low", parcels[0].DelayRisk)
	}
	if parcels[1].Status != domain.StatusDelivered {
		t.Fatalf("status = %q, want Delivered", parcels[1].Status)
	}
}

func TestLoadSeedsRejectsBadRows(t *testing.T) {
	cases := map[string]string{
		"empty id":       `[{"tracking_id": " ", "status": "Booked"}]`,
		"unknown status": `[{"tracking_id": "TRK1", "status": "Lost"}]`,
		"duplicate id":   `[{"tracking_id": "TRK1", "status": "Booked"}, {"tracking_id": "TRK1", "status": "Booked"}]`,
		"not json":       `{`,
	}
	for name, body := range cases {
		if _, err := LoadSeeds(writeSeedFile(t, body)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestBundledSeedFileLoads(t *testing.T) {
	parcels, err := LoadSeeds(filepath.Join("..", "..", "..", "data", "seeds", "parcels.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parcels) == 0 {
		t.Fatal("bundled seed file is empty")
	}
}

func TestMemoryParcelRepository(t *testing.T) {
	ctx := context.Background()
	clock := clockz.NewFakeClock()
	repo := NewMemoryParcelRepository(clock,
		&domain.AssignedParcel{TrackingID: "TRK002", Status: domain.StatusInTransit},
		&domain.AssignedParcel{TrackingID: "TRK001", Status: domain.StatusBooked},
	)

	list, err := repo.ListParcels(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].TrackingID != "TRK001" {
		t.Fatalf("list not ordered by tracking id: %+v", list)
	}

	// Returned values are copies.
	list[0].Status = domain.StatusReturned
	got, _ := repo.GetParcel(ctx, "TRK001")
	if got.Status != domain.StatusBooked {
		t.Fatalf("repository state leaked through returned pointer")
	}

	ok, err := repo.UpdateStatus(ctx, "TRK001", domain.StatusDelivered)
	if err != nil || !ok {
		t.Fatalf("update = %v, %v; want true, nil", ok, err)
	}
	got, _ = repo.GetParcel(ctx, "TRK001")
	if got.Status != domain.StatusDelivered {
		t.Fatalf("status = %q, want Delivered", got.Status)
	}
	if !got.UpdatedAt.Equal(clock.Now()) {
		t.Fatalf("updated_at = %s, want clock time", got.UpdatedAt)
	}

	ok, err = repo.UpdateStatus(ctx, "TRK404", domain.StatusDelivered)
	if err != nil || ok {
		t.Fatalf("update unknown = %v, %v; want false, nil", ok, err)
	}

	missing, err := repo.GetParcel(ctx, "TRK404")
	if err != nil || missing != nil {
		t.Fatalf("get unknown = %v, %v; want nil, nil", missing, err)
	}

	if err := repo.CreateParcel(ctx, &domain.AssignedParcel{TrackingID: "TRK002"}); err == nil {
		t.Fatal("expected duplicate create to fail")
	}
}

func TestSQLParcelRepositoryGetParcel(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	created := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"tracking_id", "sender", "recipient", "destination", "status",
		"post_office", "delay_risk", "created_at", "updated_at",
	}).AddRow("TRK001ABC", "John Doe", "Jane Smith", "Mumbai, MH", "In Transit",
		"Mumbai Central", "Low", created, created)

	mock.ExpectQuery("SELECT .* FROM parcels WHERE tracking_id = \\$1").
		WithArgs("TRK001ABC").
		WillReturnRows(rows)

	repo := NewSQLParcelRepository(db, nil)
	p, err := repo.GetParcel(context.Background(), "TRK001ABC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil || p.Status != domain.StatusInTransit || p.PostOffice != "Mumbai Central" {
		t.Fatalf("parcel = %+v", p)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLParcelRepositoryGetParcelUnknown(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT .* FROM parcels WHERE tracking_id = \\$1").
		WithArgs("TRK404").
		WillReturnRows(sqlmock.NewRows([]string{"tracking_id"}))

	p, err := NewSQLParcelRepository(db, nil).GetParcel(context.Background(), "TRK404")
	if err != nil || p != nil {
		t.Fatalf("get unknown = %v, %v; want nil, nil", p, err)
	}
}

func TestSQLParcelRepositoryUpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	clock := clockz.NewFakeClock()
	mock.ExpectExec("UPDATE parcels SET status = \\$1").
		WithArgs("Delivered", clock.Now().UTC(), "TRK001ABC").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE parcels SET status = \\$1").
		WithArgs("Delivered", sqlmock.AnyArg(), "TRK404").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewSQLParcelRepository(db, clock)
	ok, err := repo.UpdateStatus(context.Background(), "TRK001ABC", domain.StatusDelivered)
	if err != nil || !ok {
		t.Fatalf("update = %v, %v; want true, nil", ok, err)
	}
	ok, err = repo.UpdateStatus(context.Background(), "TRK404", domain.StatusDelivered)
	if err != nil || ok {
		t.Fatalf("update unknown = %v, %v; want false, nil", ok, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeedFromJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	path := writeSeedFile(t, `[{"tracking_id": "TRK1001", "recipient": "John Doe", "destination": "New York, NY", "status": "In Transit"}]`)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO parcels")
	prep.ExpectExec().
		WithArgs("TRK1001", "", "John Doe", "New York, NY", "In Transit", "", "Low", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := SeedFromJSON(context.Background(), db, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("seeded %d rows, want 1", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
