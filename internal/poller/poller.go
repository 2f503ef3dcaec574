// internal/poller/poller.go
package poller

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/tamzrod/amp-bridge/internal/parser"
	"github.com/tamzrod/amp-bridge/internal/poller/source"
	"github.com/tamzrod/amp-bridge/internal/record"
)

// Factory opens a new source. ONE attempt per call.
type Factory func() (source.Source, error)

// Config is the minimal runtime config the poller needs.
type Config struct {
	Name     string
	Interval time.Duration
	Sections record.Section
}

// ErrNoSection means a frame carried none of the configured sections.
var ErrNoSection = fmt.Errorf("poller: no configured section in frame: %w", parser.ErrSectionNotFound)

// Poller is a dumb, clock-driven frame reader and decoder.
// It owns its records; results carry copies.
type Poller struct {
	cfg     Config
	src     source.Source
	factory Factory
	dec     *parser.Decoder
	log     *zap.SugaredLogger

	records  record.Set
	lastHash uint64
	haveHash bool
}

// New creates a poller with immutable config.
// src may be nil when factory is set; the first tick opens it.
func New(cfg Config, src source.Source, factory Factory, dec *parser.Decoder, log *zap.SugaredLogger) (*Poller, error) {
	if cfg.Name == "" {
		return nil, errors.New("poller: name required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if cfg.Sections&record.AllSections == 0 {
		return nil, errors.New("poller: at least one section required")
	}
	if src == nil && factory == nil {
		return nil, errors.New("poller: source or factory required")
	}
	if dec == nil {
		dec = parser.NewDecoder()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Poller{cfg: cfg, src: src, factory: factory, dec: dec, log: log}, nil
}

// PollOnce performs exactly one poll cycle: read one frame, decode it.
// No retries. A dead source is dropped and reopened on a later tick.
func (p *Poller) PollOnce() PollResult {
	res := PollResult{
		Name: p.cfg.Name,
		At:   time.Now(),
	}

	if p.src == nil {
		if p.factory == nil {
			res.Err = errors.New("poller: source closed")
			res.Records = p.records
			return res
		}
		src, err := p.factory()
		if err != nil {
			res.Err = fmt.Errorf("poller: open source: %w", err)
			res.Records = p.records
			return res
		}
		p.src = src
	}

	frame, err := p.src.ReadFrame()
	if err != nil {
		if !source.Recoverable(err) && !isEOF(err) {
			p.log.Warnf("source %s failed, dropping it: %v", p.cfg.Name, err)
			p.dropSource()
		}
		res.Err = err
		res.Records = p.records
		return res
	}
	res.Frame = frame

	sum := xxhash.Sum64(frame)
	if p.haveHash && sum == p.lastHash {
		res.Unchanged = true
		res.Records = p.records
		return res
	}

	res.Presence = make(map[record.Section]parser.Presence)
	var errs []error

	for _, sec := range []record.Section{record.SectionStatus, record.SectionSettings, record.SectionCalibration} {
		if !p.cfg.Sections.Has(sec) {
			continue
		}

		pres, err := p.decode(sec, frame)
		if err != nil {
			// sections come and go between frames
			if errors.Is(err, parser.ErrSectionNotFound) {
				continue
			}
			errs = append(errs, err)
			continue
		}

		res.Decoded |= sec
		res.Presence[sec] = pres
		p.records.Valid |= sec
	}

	switch {
	case len(errs) > 0:
		res.Err = errors.Join(errs...)
	case res.Decoded == 0:
		res.Err = ErrNoSection
	default:
		p.lastHash = sum
		p.haveHash = true
	}

	if res.Decoded != 0 {
		p.records.UpdatedAt = res.At
	}
	res.Records = p.records
	return res
}

func (p *Poller) decode(sec record.Section, frame []byte) (parser.Presence, error) {
	switch sec {
	case record.SectionStatus:
		return p.dec.DecodeStatus(frame, &p.records.Status)
	case record.SectionSettings:
		return p.dec.DecodeSettings(frame, &p.records.Settings)
	case record.SectionCalibration:
		return p.dec.DecodeCalibration(frame, &p.records.Calibration)
	}
	return parser.Presence{}, fmt.Errorf("poller: unsupported section %d", sec)
}

func (p *Poller) dropSource() {
	if p.src == nil {
		return
	}
	_ = p.src.Close()
	p.src = nil
}

// Close releases the current source.
func (p *Poller) Close() error {
	if p.src == nil {
		return nil
	}
	err := p.src.Close()
	p.src = nil
	return err
}

func isEOF(err error) bool { return errors.Is(err, io.EOF) }
