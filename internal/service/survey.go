package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"surveyflow/internal/form"
	"surveyflow/internal/model"
	"surveyflow/internal/storage"
	"surveyflow/internal/survey"
	"surveyflow/internal/xmlcodec"
)

// errUnreadable marks a stored object that no longer decodes as a survey.
var errUnreadable = errors.New("stored survey is unreadable")

const (
	xmlContentType  = "application/xml"
	xmlExt          = ".xml"
	jsonContentType = "application/json"
	jsonExt         = ".json"
)

// SurveyService manages survey definitions. Each survey is stored as an XML
// object named <prefix><id>.xml, which is what export serves, and a JSON copy
// named <prefix><id>.json that keeps the fields the XML format drops.
type SurveyService interface {
	List(ctx context.Context) ([]model.Survey, error)
	Get(ctx context.Context, id string) (*model.Survey, error)

	// Create validates s, fills its metadata and stores it. A blank id is
	// derived from the title.
	Create(ctx context.Context, s *model.Survey) (*model.Survey, error)

	// Update replaces the survey stored under id, bumping its minor version
	// and keeping its creation date.
	Update(ctx context.Context, id string, s *model.Survey) (*model.Survey, error)

	Delete(ctx context.Context, id string) error

	// Duplicate copies the survey under newID with a "(copy)" title and
	// version 1.0.
	Duplicate(ctx context.Context, id, newID string) (*model.Survey, error)

	// Import decodes an XML document and creates the survey it describes.
	Import(ctx context.Context, text string) (*model.Survey, error)

	// Export returns the stored XML text of a survey.
	Export(ctx context.Context, id string) (string, error)

	// ExportURL returns a pre-signed download link for the survey XML.
	ExportURL(ctx context.Context, id string, expiry time.Duration) (string, error)

	// Check decodes text and reports its violations without storing it.
	Check(text string) ([]string, error)

	// Fields lists the input fields of a survey in order.
	Fields(ctx context.Context, id string) ([]form.Field, error)

	// SeedSample stores the demo survey when no survey exists yet.
	SeedSample(ctx context.Context) (bool, error)
}

type surveyService struct {
	store  storage.Storage
	prefix string
	log    *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewSurveyService constructs a SurveyService backed by store.
func NewSurveyService(store storage.Storage, prefix string, log *zap.Logger) SurveyService {
	return &surveyService{
		store:  store,
		prefix: prefix,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

func (s *surveyService) key(id string) string {
	return s.prefix + id + xmlExt
}

func (s *surveyService) dataKey(id string) string {
	return s.prefix + id + jsonExt
}

func (s *surveyService) List(ctx context.Context) ([]model.Survey, error) {
	objs, err := s.store.List(ctx, s.prefix)
	if err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}

	out := make([]model.Survey, 0, len(objs))
	for _, obj := range objs {
		if !strings.HasSuffix(obj.Key, xmlExt) {
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(obj.Key, s.prefix), xmlExt)
		sv, err := s.load(ctx, id)
		switch {
		case errors.Is(err, ErrNotFound):
			// removed between list and get
			continue
		case errors.Is(err, errUnreadable):
			s.log.Warn("skipping unreadable survey object", zap.String("key", obj.Key))
			continue
		case err != nil:
			return nil, err
		}
		out = append(out, *sv)
	}
	return out, nil
}

func (s *surveyService) Get(ctx context.Context, id string) (*model.Survey, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrIDRequired
	}
	return s.load(ctx, id)
}

func (s *surveyService) Create(ctx context.Context, in *model.Survey) (*model.Survey, error) {
	if in == nil {
		return nil, invalid([]string{"survey is required"})
	}
	sv := survey.Clone(in)
	if strings.TrimSpace(sv.ID) == "" {
		id, err := s.uniqueID(ctx, sv.Title)
		if err != nil {
			return nil, err
		}
		sv.ID = id
	}
	sv.Metadata = survey.NewMetadata(in.Metadata, s.now())

	if err := invalid(checkSurvey(sv)); err != nil {
		return nil, err
	}
	if err := s.ensureAbsent(ctx, sv.ID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, sv); err != nil {
		return nil, err
	}
	s.log.Info("survey created", zap.String("survey_id", sv.ID), zap.String("version", sv.Metadata.Version))
	return sv, nil
}

func (s *surveyService) Update(ctx context.Context, id string, in *model.Survey) (*model.Survey, error) {
	if in == nil {
		return nil, invalid([]string{"survey is required"})
	}
	prev, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sv := survey.Clone(in)
	if sv.ID == "" {
		sv.ID = id
	}
	if sv.ID != id {
		return nil, invalid([]string{fmt.Sprintf("survey id %q does not match %q", sv.ID, id)})
	}
	sv.Metadata = survey.UpdatedMetadata(prev.Metadata, in.Metadata, s.now())

	if err := invalid(checkSurvey(sv)); err != nil {
		return nil, err
	}
	if err := s.save(ctx, sv); err != nil {
		return nil, err
	}
	s.log.Info("survey updated", zap.String("survey_id", sv.ID), zap.String("version", sv.Metadata.Version))
	return sv, nil
}

func (s *surveyService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrIDRequired
	}
	key := s.key(id)
	if _, err := s.store.Stat(ctx, key); err != nil {
		return storeErr("stat survey", err)
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return storeErr("delete survey", err)
	}
	if err := s.store.Delete(ctx, s.dataKey(id)); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("delete survey: %w", err)
	}
	s.log.Info("survey deleted", zap.String("survey_id", id))
	return nil
}

func (s *surveyService) Duplicate(ctx context.Context, id, newID string) (*model.Survey, error) {
	if strings.TrimSpace(newID) == "" {
		return nil, ErrIDRequired
	}
	orig, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	dup := survey.Duplicate(orig, newID, s.now())
	if err := invalid(checkSurvey(dup)); err != nil {
		return nil, err
	}
	if err := s.ensureAbsent(ctx, newID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, dup); err != nil {
		return nil, err
	}
	return dup, nil
}

func (s *surveyService) Import(ctx context.Context, text string) (*model.Survey, error) {
	sv := xmlcodec.Decode(text)
	if sv == nil {
		return nil, ErrInvalidXML
	}
	return s.Create(ctx, sv)
}

func (s *surveyService) Export(ctx context.Context, id string) (string, error) {
	sv, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return xmlcodec.Encode(sv)
}

func (s *surveyService) ExportURL(ctx context.Context, id string, expiry time.Duration) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", ErrIDRequired
	}
	key := s.key(id)
	if _, err := s.store.Stat(ctx, key); err != nil {
		return "", storeErr("stat survey", err)
	}
	u, err := s.store.PresignGet(ctx, key, expiry)
	if err != nil {
		return "", fmt.Errorf("presign survey: %w", err)
	}
	return u, nil
}

func (s *surveyService) Check(text string) ([]string, error) {
	sv := xmlcodec.Decode(text)
	if sv == nil {
		return nil, ErrInvalidXML
	}
	return checkSurvey(sv), nil
}

func (s *surveyService) Fields(ctx context.Context, id string) ([]form.Field, error) {
	sv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return form.Fields(sv), nil
}

func (s *surveyService) SeedSample(ctx context.Context) (bool, error) {
	objs, err := s.store.List(ctx, s.prefix)
	if err != nil {
		return false, fmt.Errorf("list surveys: %w", err)
	}
	if len(objs) > 0 {
		return false, nil
	}
	sample := survey.Sample()
	if err := s.save(ctx, sample); err != nil {
		return false, err
	}
	s.log.Info("seeded sample survey", zap.String("survey_id", sample.ID))
	return true, nil
}

// load prefers the JSON copy and falls back to the XML object for surveys
// stored without one.
func (s *surveyService) load(ctx context.Context, id string) (*model.Survey, error) {
	b, err := s.read(ctx, s.dataKey(id))
	switch {
	case err == nil:
		var sv model.Survey
		if err := json.Unmarshal(b, &sv); err != nil || sv.ID == "" {
			return nil, fmt.Errorf("%s: %w", s.dataKey(id), errUnreadable)
		}
		return &sv, nil
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	b, err = s.read(ctx, s.key(id))
	if err != nil {
		return nil, err
	}
	sv := xmlcodec.Decode(string(b))
	if sv == nil {
		return nil, fmt.Errorf("%s: %w", s.key(id), errUnreadable)
	}
	return sv, nil
}

func (s *surveyService) read(ctx context.Context, key string) ([]byte, error) {
	rc, _, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, storeErr("get survey", err)
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read survey: %w", err)
	}
	return b, nil
}

// save writes the JSON copy before the XML object, so a survey only shows up
// in listings once both exist.
func (s *surveyService) save(ctx context.Context, sv *model.Survey) error {
	data, err := json.Marshal(sv)
	if err != nil {
		return fmt.Errorf("encode survey: %w", err)
	}
	text, err := xmlcodec.Encode(sv)
	if err != nil {
		return fmt.Errorf("encode survey: %w", err)
	}
	meta := map[string]string{}
	if sv.Metadata != nil && sv.Metadata.Version != "" {
		meta["survey-version"] = sv.Metadata.Version
	}

	objects := []struct {
		key, contentType string
		body             []byte
	}{
		{s.dataKey(sv.ID), jsonContentType, data},
		{s.key(sv.ID), xmlContentType, []byte(text)},
	}
	for _, obj := range objects {
		_, err := s.store.Put(ctx, obj.key, bytes.NewReader(obj.body), storage.PutObjectOptions{
			Size:        int64(len(obj.body)),
			ContentType: obj.contentType,
			Metadata:    meta,
		})
		if err != nil {
			return fmt.Errorf("put survey: %w", err)
		}
	}
	return nil
}

func (s *surveyService) ensureAbsent(ctx context.Context, id string) error {
	_, err := s.store.Stat(ctx, s.key(id))
	switch {
	case err == nil:
		return fmt.Errorf("survey %q: %w", id, ErrAlreadyExists)
	case errors.Is(err, storage.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("stat survey: %w", err)
	}
}

// uniqueID derives an id from title and appends -1, -2, ... until it is free.
func (s *surveyService) uniqueID(ctx context.Context, title string) (string, error) {
	base := survey.Slug(title)
	if base == "" {
		return "survey-" + s.newID(), nil
	}
	id := base
	for n := 1; ; n++ {
		err := s.ensureAbsent(ctx, id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, ErrAlreadyExists) {
			return "", err
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
}

// checkSurvey adds the storage key constraint to the domain rules.
func checkSurvey(sv *model.Survey) []string {
	violations := survey.Validate(sv)
	if strings.ContainsAny(sv.ID, `/\`) {
		violations = append(violations, "survey id must not contain path separators")
	}
	return violations
}

func storeErr(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
