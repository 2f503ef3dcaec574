// internal/parser/decode.go
package parser

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tamzrod/amp-bridge/internal/record"
)

// Decoder populates records from payload sections.
//
// A Decoder owns one scratch buffer that holds the section being decoded.
// It is not safe for concurrent use; give each goroutine its own Decoder.
type Decoder struct {
	log     *zap.SugaredLogger
	scratch [MaxSectionLen]byte
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger enables decode diagnostics at debug level: the isolated section
// text and a completion notice. Diagnostics never change decode results.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(d *Decoder) {
		if l != nil {
			d.log = l
		}
	}
}

// NewDecoder returns a Decoder. Without options it is silent.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{log: zap.NewNop().Sugar()}
	for _, o := range opts {
		o(d)
	}
	return d
}

// DecodeStatus fills dst from the "status" section of payload.
func (d *Decoder) DecodeStatus(payload []byte, dst *record.Status) (Presence, error) {
	return decode(d, payload, record.SectionStatus.Name(), statusFields, dst)
}

// DecodeSettings fills dst from the "settings" section of payload.
func (d *Decoder) DecodeSettings(payload []byte, dst *record.Settings) (Presence, error) {
	return decode(d, payload, record.SectionSettings.Name(), settingsFields, dst)
}

// DecodeCalibration fills dst from the "calibration" section of payload.
func (d *Decoder) DecodeCalibration(payload []byte, dst *record.Calibration) (Presence, error) {
	return decode(d, payload, record.SectionCalibration.Name(), calibrationFields, dst)
}

// DecodeStatus decodes with a one-shot Decoder.
func DecodeStatus(payload []byte, dst *record.Status) (Presence, error) {
	return NewDecoder().DecodeStatus(payload, dst)
}

// DecodeSettings decodes with a one-shot Decoder.
func DecodeSettings(payload []byte, dst *record.Settings) (Presence, error) {
	return NewDecoder().DecodeSettings(payload, dst)
}

// DecodeCalibration decodes with a one-shot Decoder.
func DecodeCalibration(payload []byte, dst *record.Calibration) (Presence, error) {
	return NewDecoder().DecodeCalibration(payload, dst)
}

// decode isolates the section, copies it into scratch and assigns every
// known field. On a structural error dst is left untouched; on success every
// field dst owns is overwritten, absent keys with their zero value.
func decode[T any](d *Decoder, payload []byte, section string, fields []field[T], dst *T) (Presence, error) {
	if dst == nil {
		return Presence{}, fmt.Errorf("parser: %s: nil destination", section)
	}

	obj, err := isolate(payload, section)
	if err != nil {
		return Presence{}, fmt.Errorf("parser: %s: %w", section, err)
	}
	if len(obj) > len(d.scratch) {
		return Presence{}, fmt.Errorf("parser: %s: %d bytes: %w", section, len(obj), ErrSectionTooLarge)
	}

	n := copy(d.scratch[:], obj)
	obj = d.scratch[:n]

	d.log.Debugf("parsing %s object: %s", section, obj)

	var out T
	p := Presence{section: section, keys: keysOf(fields)}
	for i, f := range fields {
		v, found := lookup(obj, f.key)
		if found {
			p.bits |= 1 << uint(i)
		}
		f.set(&out, v)
	}
	*dst = out

	d.log.Debugf("%s parsing completed (%d/%d keys)", section, p.Count(), len(fields))

	return p, nil
}
