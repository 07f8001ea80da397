package workflow

import (
	"sync"
	"testing"
	"time"

	"bitbucket.org/gfmis/budget_backend/models"
	"bitbucket.org/gfmis/budget_backend/utils"
	"github.com/shopspring/decimal"
)

type fakeBudgetLineStore struct {
	allocation    *models.Allocation
	allocationErr error

	existing map[string]bool
	inserted []*models.Expenditure

	previousReleases decimal.Decimal
	previousActual   decimal.Decimal
}

func newFakeStore(appropriation, allotment int64) *fakeBudgetLineStore {
	return &fakeBudgetLineStore{
		allocation: &models.Allocation{
			Appropriation: decimal.NewFromInt(appropriation),
			Allotment:     decimal.NewFromInt(allotment),
		},
		existing: map[string]bool{},
	}
}

func (s *fakeBudgetLineStore) ExpenditureExists(activity string, date time.Time) (bool, error) {
	return s.existing[activity+"|"+date.Format("2006-01-02")], nil
}

func (s *fakeBudgetLineStore) LockAllocation(organization, classification, funding, account string) (*models.Allocation, error) {
	if s.allocationErr != nil {
		return nil, s.allocationErr
	}
	return s.allocation, nil
}

func (s *fakeBudgetLineStore) SumPreviousReleases(organization, classification, funding, account string) (decimal.Decimal, error) {
	return s.previousReleases, nil
}

func (s *fakeBudgetLineStore) SumPreviousActualExpenditure(organization, classification, funding, account string) (decimal.Decimal, error) {
	return s.previousActual, nil
}

func (s *fakeBudgetLineStore) InsertExpenditure(e *models.Expenditure) error {
	s.existing[e.Activity+"|"+e.Date.Format("2006-01-02")] = true
	s.previousReleases = s.previousReleases.Add(e.Releases)
	s.previousActual = s.previousActual.Add(e.ActualExpenditure)
	s.inserted = append(s.inserted, e)
	return nil
}

func testCreator() *models.User {
	return &models.User{ID: 7, Organization: "MOF", Role: models.RoleDataEntry}
}

func baseInput() ExpenditureInput {
	return ExpenditureInput{
		Activity:               "Road maintenance",
		Date:                   time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		EconomicClassification: models.ClassificationCapitalExpenditure,
		SourceOfFunding:        models.FundingSourceGoG,
		NaturalAccount:         "2210101",
		Description:            "Pothole repairs, Ring Road",
		Releases:               decimal.NewFromInt(40000),
		ActualExpenditure:      decimal.NewFromInt(35000),
		ActualPayment:          decimal.NewFromInt(30000),
	}
}

func TestPostExpenditureRequiredFields(t *testing.T) {
	store := newFakeStore(100000, 80000)

	cases := []struct {
		name   string
		mutate func(*ExpenditureInput)
	}{
		{"missing activity", func(in *ExpenditureInput) { in.Activity = "" }},
		{"missing date", func(in *ExpenditureInput) { in.Date = time.Time{} }},
		{"missing classification", func(in *ExpenditureInput) { in.EconomicClassification = "" }},
		{"missing funding", func(in *ExpenditureInput) { in.SourceOfFunding = "" }},
		{"missing account", func(in *ExpenditureInput) { in.NaturalAccount = "" }},
		{"missing description", func(in *ExpenditureInput) { in.Description = "" }},
	}
	for _, tc := range cases {
		input := baseInput()
		tc.mutate(&input)
		_, err := PostExpenditure(store, testCreator(), input)
		if utils.KindOf(err) != utils.ErrorKindValidation {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}
	if len(store.inserted) != 0 {
		t.Fatalf("no rows should be inserted on validation failure, got %d", len(store.inserted))
	}
}

func TestPostExpenditureDuplicateActivityDate(t *testing.T) {
	store := newFakeStore(500000, 400000)

	if _, err := PostExpenditure(store, testCreator(), baseInput()); err != nil {
		t.Fatalf("first posting should pass: %v", err)
	}
	_, err := PostExpenditure(store, testCreator(), baseInput())
	if utils.KindOf(err) != utils.ErrorKindConflict {
		t.Fatalf("expected conflict on duplicate (activity, date), got %v", err)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("expected exactly one inserted row, got %d", len(store.inserted))
	}
}

func TestPostExpenditureNoAllotment(t *testing.T) {
	store := newFakeStore(100000, 0)

	input := baseInput()
	input.Releases = decimal.NewFromInt(120000)
	_, err := PostExpenditure(store, testCreator(), input)
	if utils.KindOf(err) != utils.ErrorKindBusinessRule {
		t.Fatalf("releases above appropriation must be rejected, got %v", err)
	}

	input = baseInput()
	input.Releases = decimal.NewFromInt(100000)
	posted, err := PostExpenditure(store, testCreator(), input)
	if err != nil {
		t.Fatalf("releases at the appropriation ceiling should pass: %v", err)
	}
	if !posted.AllotmentBalance.IsZero() {
		t.Fatalf("balance is pinned to zero when there is no allotment, got %s", posted.AllotmentBalance)
	}
}

func TestPostExpenditureActualSpendBranch(t *testing.T) {
	// Goods and services funded from GoG consume the allotment by cumulative
	// actual expenditure, not by releases.
	store := newFakeStore(300000, 200000)
	store.previousActual = decimal.NewFromInt(150000)

	input := baseInput()
	input.EconomicClassification = models.ClassificationGoodsAndServices
	input.ActualExpenditure = decimal.NewFromInt(60000)

	_, err := PostExpenditure(store, testCreator(), input)
	if utils.KindOf(err) != utils.ErrorKindBusinessRule {
		t.Fatalf("150000 + 60000 over a 200000 allotment must fail, got %v", err)
	}

	input.ActualExpenditure = decimal.NewFromInt(50000)
	posted, err := PostExpenditure(store, testCreator(), input)
	if err != nil {
		t.Fatalf("150000 + 50000 exactly consumes the allotment: %v", err)
	}
	if !posted.AllotmentBalance.IsZero() {
		t.Fatalf("expected zero balance, got %s", posted.AllotmentBalance)
	}
}

func TestPostExpenditureReleasesBranch(t *testing.T) {
	store := newFakeStore(500000, 400000)
	store.previousReleases = decimal.NewFromInt(250000)

	input := baseInput()
	input.Releases = decimal.NewFromInt(100000)
	posted, err := PostExpenditure(store, testCreator(), input)
	if err != nil {
		t.Fatalf("posting within the allotment should pass: %v", err)
	}
	want := decimal.NewFromInt(50000)
	if !posted.AllotmentBalance.Equal(want) {
		t.Fatalf("balance = allotment - cumulative releases: want %s got %s", want, posted.AllotmentBalance)
	}
	if !posted.Appropriation.Equal(decimal.NewFromInt(500000)) || !posted.Allotment.Equal(decimal.NewFromInt(400000)) {
		t.Fatal("appropriation and allotment must be snapshotted from the allocation")
	}
	if posted.Status != models.RecordStatusPending {
		t.Fatalf("new postings start Pending, got %s", posted.Status)
	}
}

func TestPostExpenditureNeverOverspendsUnderContention(t *testing.T) {
	// The mutex stands in for the allocation row lock, which serializes
	// whole postings against one budget line. However the goroutines are
	// scheduled, the summed releases of the accepted postings must never
	// exceed the allotment.
	store := newFakeStore(1000000, 100000)

	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(day int) {
			defer wg.Done()
			input := baseInput()
			input.Date = time.Date(2026, 2, 1+day, 0, 0, 0, 0, time.UTC)
			input.Releases = decimal.NewFromInt(30000)
			mu.Lock()
			_, _ = PostExpenditure(store, testCreator(), input)
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	total := decimal.Zero
	for _, e := range store.inserted {
		total = total.Add(e.Releases)
	}
	if total.GreaterThan(decimal.NewFromInt(100000)) {
		t.Fatalf("accepted releases %s exceed the 100000 allotment", total)
	}
	if len(store.inserted) != 3 {
		t.Fatalf("exactly 3 postings of 30000 fit under 100000, got %d", len(store.inserted))
	}
}

func TestTracksActualSpend(t *testing.T) {
	if !TracksActualSpend(models.ClassificationGoodsAndServices, "GoG") {
		t.Fatal("goods and services + GoG tracks actual spend")
	}
	if !TracksActualSpend(models.ClassificationGoodsAndServices, "GOG") {
		t.Fatal("funding source comparison is case-insensitive")
	}
	if TracksActualSpend(models.ClassificationGoodsAndServices, "IGF") {
		t.Fatal("IGF-funded goods and services track releases")
	}
	if TracksActualSpend(models.ClassificationCompensation, "GoG") {
		t.Fatal("compensation tracks releases regardless of funding")
	}
}
