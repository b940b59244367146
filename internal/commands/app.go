package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cleared-dev/compta/internal/accounts"
	"github.com/cleared-dev/compta/internal/audit"
	"github.com/cleared-dev/compta/internal/config"
	"github.com/cleared-dev/compta/internal/history"
	"github.com/cleared-dev/compta/internal/journal"
	"github.com/cleared-dev/compta/internal/ledger"
	"github.com/cleared-dev/compta/internal/model"
	"github.com/cleared-dev/compta/internal/period"
)

const dateLayout = "2006-01-02"

// app holds the persistent flags and state shared by subcommands.
type app struct {
	journalPath string
	configPath  string
	chartPath   string
	year        int
	debug       bool
	jsonLogs    bool
	commit      bool

	logger *slog.Logger
}

// config loads the configuration file, falling back to the defaults when it
// does not exist.
func (a *app) config() (*config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if errors.Is(err, os.ErrNotExist) {
		a.logger.Debug("no config file, using defaults", slog.String("path", a.configPath))
		return config.Default(""), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// chart loads the chart of accounts given by --chart, or nil.
func (a *app) chart() (*accounts.Service, error) {
	if a.chartPath == "" {
		return nil, nil
	}
	f, err := os.Open(a.chartPath)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := accounts.ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return accounts.NewService(accts), nil
}

func (a *app) readJournal() ([]model.Entry, error) {
	f, err := os.Open(a.journalPath)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	entries, err := journal.ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", a.journalPath, err)
	}
	a.logger.Debug("journal loaded", slog.String("path", a.journalPath), slog.Int("entries", len(entries)))
	return entries, nil
}

func writeJournal(path string, entries []model.Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating journal dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating journal: %w", err)
	}
	if err := journal.WriteEntries(f, entries); err != nil {
		f.Close()
		return fmt.Errorf("writing journal %s: %w", path, err)
	}
	return f.Close()
}

var errAlreadyBooked = errors.New("entry already in the journal")

// book appends generated entries to the journal. An entry whose ID is
// already there is refused, so running a closing twice is harmless.
func (a *app) book(entries []model.Entry) error {
	existing, err := a.readJournal()
	if err != nil {
		return err
	}
	books := append(existing, entries...)
	if err := uniqueIDs(books); err != nil {
		return err
	}
	return writeJournal(a.journalPath, books)
}

// uniqueIDs refuses a journal in which two entries share an ID; the CSV
// codec would merge their lines into one entry.
func uniqueIDs(entries []model.Entry) error {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.ID] {
			return fmt.Errorf("%w: %s", errAlreadyBooked, e.ID)
		}
		seen[e.ID] = true
	}
	return nil
}

// fiscal returns the period selected by --year, or the one holding the
// earliest entry.
func (a *app) fiscal(cfg *config.Config, entries []model.Entry) (period.Fiscal, error) {
	if a.year != 0 {
		return period.Year(a.year, cfg.Fiscal.YearStart)
	}
	if len(entries) == 0 {
		return fiscalFor(cfg, today())
	}
	earliest := entries[0].Date
	for _, e := range entries[1:] {
		if e.Date.Before(earliest) {
			earliest = e.Date
		}
	}
	return fiscalFor(cfg, earliest)
}

// fiscalFor returns the fiscal year holding day.
func fiscalFor(cfg *config.Config, day time.Time) (period.Fiscal, error) {
	f, err := period.Year(day.Year(), cfg.Fiscal.YearStart)
	if err != nil {
		return period.Fiscal{}, err
	}
	if day.Before(f.Start) {
		return period.Year(day.Year()-1, cfg.Fiscal.YearStart)
	}
	return f, nil
}

// inPeriod keeps the entries dated within f.
func inPeriod(f period.Fiscal, entries []model.Entry) []model.Entry {
	var out []model.Entry
	for _, e := range entries {
		if f.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// load reads config and journal and selects the reporting period.
func (a *app) load() (*config.Config, period.Fiscal, []model.Entry, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, period.Fiscal{}, nil, err
	}
	all, err := a.readJournal()
	if err != nil {
		return nil, period.Fiscal{}, nil, err
	}
	f, err := a.fiscal(cfg, all)
	if err != nil {
		return nil, period.Fiscal{}, nil, err
	}
	entries := inPeriod(f, all)
	a.logger.Info("period selected",
		slog.String("period", f.ID),
		slog.Int("entries", len(entries)),
		slog.Int("outside_period", len(all)-len(entries)))
	return cfg, f, entries, nil
}

func (a *app) trialBalance(f period.Fiscal, entries []model.Entry) (*model.TrialBalance, error) {
	tb, err := ledger.ComputeTrialBalance(entries, f.Period())
	if err != nil {
		a.logger.Error("trial balance is inconsistent",
			slog.String("period", f.ID),
			slog.String("total_debit", tb.TotalDebit.StringFixed(2)),
			slog.String("total_credit", tb.TotalCredit.StringFixed(2)))
	}
	return tb, err
}

func parseDate(flag, value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing --%s %q: %w", flag, value, err)
	}
	return t, nil
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// writeEntries writes generated entries as journal CSV to path, or to the
// command output when path is empty.
func writeEntries(out io.Writer, path string, entries []model.Entry) error {
	if path == "" {
		return journal.WriteEntries(out, entries)
	}
	return writeJournal(path, entries)
}

// record appends ev to the audit trail next to the journal. With --commit
// and a git repository there, the journal is committed first and the event
// carries the commit hash.
func (a *app) record(ev audit.Event) error {
	ev.Timestamp = time.Now()
	dir := filepath.Dir(a.journalPath)

	if a.commit {
		if !history.IsRepo(dir) {
			a.logger.Warn("--commit ignored, journal is not in a git repository", slog.String("dir", dir))
		} else {
			msg := ev.Action
			if ev.Details != "" {
				msg += ": " + ev.Details
			}
			paths := []string{filepath.Base(a.journalPath)}
			if _, err := os.Stat(audit.Path(a.journalPath)); err == nil {
				paths = append(paths, audit.FileName)
			}
			hash, err := history.Commit(dir, msg, paths...)
			if err != nil {
				return err
			}
			ev.Commit = hash
			a.logger.Debug("journal committed", slog.String("commit", hash))
		}
	}

	if err := audit.Append(audit.Path(a.journalPath), []audit.Event{ev}); err != nil {
		return fmt.Errorf("recording %s: %w", ev.Action, err)
	}
	return nil
}
