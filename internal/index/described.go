package index

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"amqpspec/internal/schema"
)

// domainPrefix is the high part every id in the standard domain shares.
const domainPrefix = "000000"

// resolveDescribed validates descriptor codes, derives short codes and
// orders described types by short code.
func (b *builder) resolveDescribed() (string, error) {
	out := make([]DescribedType, 0, len(b.described))
	for _, d := range b.described {
		short, domain, id, reason := ParseDescriptorCode(d.Descriptor.Code)
		if reason != "" {
			return "", &DescriptorError{
				Document: d.Loc.Document,
				Type:     d.Name,
				Code:     d.Descriptor.Code,
				Pos:      b.pos(d.Loc, d.Descriptor.Span),
				Reason:   reason,
			}
		}
		out = append(out, DescribedType{Described: d, ShortCode: short, Domain: domain, ID: id})
	}

	slices.SortStableFunc(out, func(x, y DescribedType) int {
		if c := cmp.Compare(x.ShortCode, y.ShortCode); c != 0 {
			return c
		}
		return cmp.Compare(x.LongName(), y.LongName())
	})
	b.m.described = out
	return plural(len(out), "described type", ""), nil
}

// ParseDescriptorCode checks a raw "0xDDDDDDDD:0xIIIIIIII" code whose id
// part starts with six zeros. It returns the short code ("0x" + the last
// two digits) and the numeric domain and id, or a non-empty reason.
func ParseDescriptorCode(raw string) (short string, domain, id uint32, reason string) {
	const size = len("0x00000000:0x00000000")
	if len(raw) != size {
		return "", 0, 0, "expected " + strconv.Itoa(size) + " characters, got " + strconv.Itoa(len(raw))
	}
	if !strings.HasPrefix(raw, "0x") || raw[10:13] != ":0x" {
		return "", 0, 0, "expected the form 0xDDDDDDDD:0xIIIIIIII"
	}
	if raw[13:19] != domainPrefix {
		return "", 0, 0, "id part must start with " + domainPrefix
	}

	domain, err := parseHex32(raw[2:10])
	if err != nil {
		return "", 0, 0, "domain part is not hexadecimal"
	}
	id, err = parseHex32(raw[13:])
	if err != nil {
		return "", 0, 0, "id part is not hexadecimal"
	}
	return "0x" + raw[19:], domain, id, ""
}

func parseHex32(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, err
	}
	return safecast.Conv[uint32](n)
}

// resolveEnumerated orders enumerated types by long name. Choices stay in
// declaration order on each type.
func (b *builder) resolveEnumerated() (string, error) {
	b.m.enumerated = slices.Clone(b.enumerated)
	slices.SortStableFunc(b.m.enumerated, func(x, y *schema.Enumerated) int {
		return cmp.Compare(x.LongName(), y.LongName())
	})
	choices := 0
	for _, e := range b.m.enumerated {
		choices += len(e.Choices)
	}
	return notef("%s, %s", plural(len(b.m.enumerated), "type", ""), plural(choices, "choice", "")), nil
}

func (b *builder) resolveRestricted() (string, error) {
	b.m.restricted = slices.Clone(b.restricted)
	slices.SortStableFunc(b.m.restricted, func(x, y *schema.Restricted) int {
		return cmp.Compare(x.LongName(), y.LongName())
	})
	return plural(len(b.m.restricted), "type", ""), nil
}
