package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/daftarhq/daftar_backend/internal/core/domain"
	portsrepo "github.com/daftarhq/daftar_backend/internal/core/ports/repositories"
	portssvc "github.com/daftarhq/daftar_backend/internal/core/ports/services"
	"github.com/daftarhq/daftar_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ReportingService builds the financial reports from leaf-code aggregates.
// It never reads journals directly; the aggregation queries already exclude
// drafts, and reversed originals cancel against their reversal journals.
type ReportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	codeRepo      portsrepo.CodeRepositoryFacade
	fiscalYears   portssvc.FiscalYearReaderSvc
}

func NewReportingService(repo portsrepo.ReportingRepository, codeRepo portsrepo.CodeRepositoryFacade, fiscalYears portssvc.FiscalYearReaderSvc) *ReportingService {
	return &ReportingService{
		reportingRepo: repo,
		codeRepo:      codeRepo,
		fiscalYears:   fiscalYears,
	}
}

// resolveSpan defaults a report window to the fiscal year's own span.
func (s *ReportingService) resolveSpan(fy *domain.FiscalYear, from, to *time.Time) (time.Time, time.Time) {
	start, end := fy.StartDate, fy.EndDate
	if from != nil {
		start = *from
	}
	if to != nil {
		end = *to
	}
	return start, end
}

func (s *ReportingService) loadCodes(ctx context.Context) (map[string]domain.Code, error) {
	codes, err := s.codeRepo.ListCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart of codes: %w", err)
	}
	byID := make(map[string]domain.Code, len(codes))
	for _, c := range codes {
		byID[c.CodeID] = c
	}
	return byID, nil
}

// TrialBalance returns per-code debit/credit totals with rollups to general
// and group ancestors. Grand totals sum leaves only, so they balance exactly
// when the underlying journals do.
func (s *ReportingService) TrialBalance(ctx context.Context, fiscalYearID string, from, to *time.Time) (*domain.TrialBalanceReport, error) {
	fy, err := s.fiscalYears.GetFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}
	start, end := s.resolveSpan(fy, from, to)

	sums, err := s.reportingRepo.GetCodeSums(ctx, fiscalYearID, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate code sums")
		return nil, err
	}
	codesByID, err := s.loadCodes(ctx)
	if err != nil {
		return nil, err
	}

	type rowAcc struct {
		debit  decimal.Decimal
		credit decimal.Decimal
	}
	acc := make(map[string]*rowAcc)
	add := func(codeID string, debit, credit decimal.Decimal) {
		r, ok := acc[codeID]
		if !ok {
			r = &rowAcc{debit: decimal.Zero, credit: decimal.Zero}
			acc[codeID] = r
		}
		r.debit = r.debit.Add(debit)
		r.credit = r.credit.Add(credit)
	}

	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, sum := range sums {
		totalDebit = totalDebit.Add(sum.Debit)
		totalCredit = totalCredit.Add(sum.Credit)

		// Roll the leaf total up its parent chain.
		id := sum.CodeID
		for {
			code, ok := codesByID[id]
			if !ok {
				return nil, fmt.Errorf("aggregate references unknown code %s", id)
			}
			add(id, sum.Debit, sum.Credit)
			if code.ParentCodeID == nil {
				break
			}
			id = *code.ParentCodeID
		}
	}

	rows := make([]domain.TrialBalanceRow, 0, len(acc))
	for codeID, r := range acc {
		code := codesByID[codeID]
		rows = append(rows, domain.TrialBalanceRow{
			CodeID: codeID,
			Code:   code.Code,
			Title:  code.Title,
			Kind:   code.Kind,
			Debit:  r.debit,
			Credit: r.credit,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })

	return &domain.TrialBalanceReport{
		Rows:        rows,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
	}, nil
}

// Ledger returns every posted movement touching a code in date-then-serial
// order, annotated with running balances signed by the code's nature.
func (s *ReportingService) Ledger(ctx context.Context, fiscalYearID, codeID string, from, to *time.Time) (*domain.LedgerReport, error) {
	fy, err := s.fiscalYears.GetFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}
	code, err := s.codeRepo.FindCodeByID(ctx, codeID)
	if err != nil {
		return nil, err
	}
	start, end := s.resolveSpan(fy, from, to)

	entries, err := s.reportingRepo.GetLedgerEntries(ctx, fiscalYearID, codeID, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger entries", "code_id", codeID)
		return nil, err
	}

	nature := domain.NatureDebit
	if code.Nature != nil {
		nature = *code.Nature
	}

	balance := decimal.Zero
	for i := range entries {
		movement := domain.JournalItem{Debit: entries[i].Debit, Credit: entries[i].Credit}
		balance = balance.Add(accounting.SignedAmount(movement, nature))
		entries[i].Balance = balance
	}

	return &domain.LedgerReport{
		CodeID:  code.CodeID,
		Code:    code.Code,
		Title:   code.Title,
		Entries: entries,
		Balance: balance,
	}, nil
}

type partitionedSums struct {
	amounts map[domain.CodeCategory][]domain.CategoryAmount
	totals  map[domain.CodeCategory]decimal.Decimal
}

// partitionByCategory nets each leaf by its group-level category. Asset and
// expense codes grow with debits, the rest with credits.
func (s *ReportingService) partitionByCategory(ctx context.Context, fiscalYearID string, start, end time.Time) (*partitionedSums, error) {
	sums, err := s.reportingRepo.GetCodeSums(ctx, fiscalYearID, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate code sums")
		return nil, err
	}
	codesByID, err := s.loadCodes(ctx)
	if err != nil {
		return nil, err
	}

	p := &partitionedSums{
		amounts: make(map[domain.CodeCategory][]domain.CategoryAmount),
		totals:  make(map[domain.CodeCategory]decimal.Decimal),
	}
	for _, sum := range sums {
		code, ok := codesByID[sum.CodeID]
		if !ok {
			return nil, fmt.Errorf("aggregate references unknown code %s", sum.CodeID)
		}

		var amount decimal.Decimal
		switch code.Category {
		case domain.CategoryAsset, domain.CategoryExpense:
			amount = sum.Debit.Sub(sum.Credit)
		default:
			amount = sum.Credit.Sub(sum.Debit)
		}

		p.amounts[code.Category] = append(p.amounts[code.Category], domain.CategoryAmount{
			CodeID: code.CodeID,
			Code:   code.Code,
			Title:  code.Title,
			Amount: amount,
		})
		total, ok := p.totals[code.Category]
		if !ok {
			total = decimal.Zero
		}
		p.totals[code.Category] = total.Add(amount)
	}

	for _, amounts := range p.amounts {
		sort.Slice(amounts, func(i, j int) bool { return amounts[i].Code < amounts[j].Code })
	}
	return p, nil
}

func (p *partitionedSums) total(cat domain.CodeCategory) decimal.Decimal {
	if t, ok := p.totals[cat]; ok {
		return t
	}
	return decimal.Zero
}

func (p *partitionedSums) list(cat domain.CodeCategory) []domain.CategoryAmount {
	if amounts, ok := p.amounts[cat]; ok {
		return amounts
	}
	return []domain.CategoryAmount{}
}

// BalanceSheet builds the asset/liability/equity statement as of a date.
// Equity carries the period result so the accounting identity holds without
// a closing entry.
func (s *ReportingService) BalanceSheet(ctx context.Context, fiscalYearID string, asOf *time.Time) (*domain.BalanceSheetReport, error) {
	fy, err := s.fiscalYears.GetFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}
	end := fy.EndDate
	if asOf != nil {
		end = *asOf
	}

	p, err := s.partitionByCategory(ctx, fiscalYearID, fy.StartDate, end)
	if err != nil {
		return nil, err
	}

	periodResult := p.total(domain.CategoryRevenue).Sub(p.total(domain.CategoryExpense))
	totalAssets := p.total(domain.CategoryAsset)
	totalLiabilities := p.total(domain.CategoryLiability)
	totalEquity := p.total(domain.CategoryEquity).Add(periodResult)

	return &domain.BalanceSheetReport{
		Assets:           p.list(domain.CategoryAsset),
		Liabilities:      p.list(domain.CategoryLiability),
		Equity:           p.list(domain.CategoryEquity),
		PeriodResult:     periodResult,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		TotalEquity:      totalEquity,
		Balanced:         accounting.IsBalanced(totalAssets, totalLiabilities.Add(totalEquity)),
	}, nil
}

// ProfitAndLoss builds the revenue/expense statement for a period.
func (s *ReportingService) ProfitAndLoss(ctx context.Context, fiscalYearID string, from, to *time.Time) (*domain.ProfitLossReport, error) {
	fy, err := s.fiscalYears.GetFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}
	start, end := s.resolveSpan(fy, from, to)

	p, err := s.partitionByCategory(ctx, fiscalYearID, start, end)
	if err != nil {
		return nil, err
	}

	totalRevenue := p.total(domain.CategoryRevenue)
	totalExpense := p.total(domain.CategoryExpense)

	return &domain.ProfitLossReport{
		Revenue:      p.list(domain.CategoryRevenue),
		Expense:      p.list(domain.CategoryExpense),
		TotalRevenue: totalRevenue,
		TotalExpense: totalExpense,
		Profit:       totalRevenue.Sub(totalExpense),
	}, nil
}
