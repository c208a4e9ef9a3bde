package people

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/lotus/core"
)

const (
	// DefaultPhoto is set on records created without a photo.
	DefaultPhoto = "/avatar.png"

	// searchRatio is the minimum similarity between the search term and a name word.
	searchRatio = 0.7
)

type Service struct {
	repo     Repository
	validate *validator.Validate
	logger   core.Logger

	mu      sync.Mutex
	rnd     *rand.Rand
	newCode func() string
}

func NewService(repo Repository, validate *validator.Validate, logger core.Logger) *Service {
	svc := &Service{
		repo:     repo,
		validate: validate,
		logger:   logger,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	svc.newCode = svc.randomCode
	return svc
}

// randomCode returns a random 10-digit identifier.
func (svc *Service) randomCode() string {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return fmt.Sprintf("%d", 1000000000+svc.rnd.Int63n(9000000000))
}

// Query lists the records of kind matching filter, sorted by ordering (repository order if empty).
func (svc *Service) Query(ctx context.Context, kind Kind, filter QueryFilter, ordering []core.Ordering) ([]Record, error) {
	if _, err := SchemaOf(kind); err != nil {
		return nil, err
	}
	records, err := svc.repo.QueryAll(ctx, kind)
	if err != nil {
		return nil, errors.Wrapf(err, "querying %s", kind.Plural())
	}

	filter.Clean()
	if filter.Search != "" {
		matches := make([]Record, 0, len(records))
		for _, rec := range records {
			if matchSearch(rec, filter.Search) {
				matches = append(matches, rec)
			}
		}
		records = matches
	}

	if len(ordering) > 0 {
		sort.SliceStable(records, func(i, j int) bool {
			return less(records[i], records[j], ordering)
		})
	}
	return records, nil
}

func (svc *Service) Get(ctx context.Context, kind Kind, id int) (Record, error) {
	if _, err := SchemaOf(kind); err != nil {
		return Record{}, err
	}
	return svc.repo.GetByID(ctx, kind, id)
}

func (svc *Service) Count(ctx context.Context, kind Kind) (int, error) {
	return svc.repo.Count(ctx, kind)
}

// Create validates input against the kind's schema and stores the new record first.
func (svc *Service) Create(ctx context.Context, kind Kind, input map[string]interface{}) (Record, error) {
	fields, err := svc.clean(kind, input)
	if err != nil {
		return Record{}, err
	}
	if code := kind.codeField(); code != "" {
		fields[code] = svc.newCode()
	}
	if photo, _ := fields["photo"].(string); photo == "" && kind != KindParent {
		fields["photo"] = DefaultPhoto
	}

	rec, err := svc.repo.Prepend(ctx, Record{Kind: kind, Fields: fields})
	if err != nil {
		return Record{}, errors.Wrapf(err, "creating %s", kind)
	}
	svc.logger.Info(fmt.Sprintf("%s %d created", kind, rec.ID))
	return rec, nil
}

// Update replaces the fields of record id with input. Generated identifiers are kept.
func (svc *Service) Update(ctx context.Context, kind Kind, id int, input map[string]interface{}) (Record, error) {
	fields, err := svc.clean(kind, input)
	if err != nil {
		return Record{}, err
	}
	orig, err := svc.repo.GetByID(ctx, kind, id)
	if err != nil {
		return Record{}, err
	}
	if code := kind.codeField(); code != "" {
		fields[code] = orig.Fields[code]
	}
	if photo, _ := fields["photo"].(string); photo == "" && kind != KindParent {
		fields["photo"] = orig.Fields["photo"]
	}

	rec, err := svc.repo.Replace(ctx, Record{ID: id, Kind: kind, Fields: fields})
	if err != nil {
		return Record{}, errors.Wrapf(err, "updating %s", kind)
	}
	return rec, nil
}

func (svc *Service) Delete(ctx context.Context, kind Kind, id int) error {
	if _, err := SchemaOf(kind); err != nil {
		return err
	}
	return svc.repo.Delete(ctx, kind, id)
}

// clean normalizes & validates input, returning a *core.ValidationError on invalid input.
func (svc *Service) clean(kind Kind, input map[string]interface{}) (Fields, error) {
	schema, err := SchemaOf(kind)
	if err != nil {
		return nil, err
	}
	fields, fldErrs := schema.Normalize(input)
	for name, msg := range schema.Validate(svc.validate, fields) {
		if _, exists := fldErrs[name]; !exists {
			fldErrs[name] = msg
		}
	}
	if len(fldErrs) > 0 {
		return nil, core.NewValidationError(nil, schema.fieldErrors(fldErrs)...)
	}
	return fields, nil
}

// matchSearch reports whether term (lowered) is in the record's name or email,
// or is close enough to one of the words of its name.
func matchSearch(rec Record, term string) bool {
	name := strings.ToLower(rec.Text("name"))
	if strings.Contains(name, term) || strings.Contains(strings.ToLower(rec.Text("email")), term) {
		return true
	}
	for _, word := range strings.Fields(name) {
		m := difflib.NewMatcher(strings.Split(term, ""), strings.Split(word, ""))
		if m.Ratio() >= searchRatio {
			return true
		}
	}
	return false
}

func less(a, b Record, ordering []core.Ordering) bool {
	for _, ord := range ordering {
		c := compare(a.Value(ord.Field), b.Value(ord.Field))
		if c == 0 {
			continue
		}
		if ord.Ascending {
			return c < 0
		}
		return c > 0
	}
	return false
}

func compare(a, b interface{}) int {
	ai, aIsInt := a.(int)
	bi, bIsInt := b.(int)
	if aIsInt && bIsInt {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	}
	return strings.Compare(strings.ToLower(text(a)), strings.ToLower(text(b)))
}

func text(v interface{}) string {
	return Record{Fields: Fields{"v": v}}.Text("v")
}
