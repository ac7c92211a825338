package templates

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// DefaultSection names the template of a file without section markers.
const DefaultSection = "body"

var sectionMarker = regexp.MustCompile(`(?m)^[ \t]*<:([A-Za-z][A-Za-z0-9_-]*)>[ \t]*\r?$\n?`)

// SectionParser is the stock Parser. A view file is split into sections at
// lines holding only a "<:Name>" marker; each section becomes a template
// named pathKey + "/" + snake_case(Name). Text before the first marker, or
// the whole file when there is none, forms the "body" section.
//
// Inside a section, "{{ expr }}" in text becomes a content binding and an
// "e-<event>" attribute becomes an event binding on the element's id.
type SectionParser struct{}

// NewSectionParser creates a SectionParser.
func NewSectionParser() *SectionParser {
	return &SectionParser{}
}

type section struct {
	name string
	body string
}

// Parse implements Parser.
func (p *SectionParser) Parse(markup, pathKey string) (*Set, error) {
	sections, err := splitSections(markup)
	if err != nil {
		return nil, err
	}

	set := NewSet()
	for _, sec := range sections {
		c := &compiler{bindings: NewBindings()}
		if err := c.compile(sec.body); err != nil {
			return nil, fmt.Errorf("section %s: %w", sec.name, err)
		}
		set.Add(&Template{
			Name:     pathKey + "/" + sec.name,
			Markup:   c.out.String(),
			Bindings: c.bindings,
		})
	}
	return set, nil
}

func splitSections(markup string) ([]section, error) {
	locs := sectionMarker.FindAllStringSubmatchIndex(markup, -1)
	if len(locs) == 0 {
		return []section{{name: DefaultSection, body: strings.TrimSpace(markup)}}, nil
	}

	var sections []section
	seen := make(map[string]bool)

	if prefix := strings.TrimSpace(markup[:locs[0][0]]); prefix != "" {
		sections = append(sections, section{name: DefaultSection, body: prefix})
		seen[DefaultSection] = true
	}

	for i, loc := range locs {
		name := snakeCase(markup[loc[2]:loc[3]])
		if seen[name] {
			return nil, fmt.Errorf("duplicate section %q", name)
		}
		seen[name] = true

		end := len(markup)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		sections = append(sections, section{name: name, body: strings.TrimSpace(markup[loc[1]:end])})
	}
	return sections, nil
}

// snakeCase converts "MainBody" or "main-body" to "main_body".
func snakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '-':
			b.WriteByte('_')
		case unicode.IsUpper(r):
			if i > 0 && runes[i-1] != '-' && runes[i-1] != '_' && !unicode.IsUpper(runes[i-1]) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

type compiler struct {
	out      strings.Builder
	bindings *Bindings
	next     int
}

func (c *compiler) nextID() int {
	id := c.next
	c.next++
	return id
}

func (c *compiler) compile(src string) error {
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return nil
			}
			return z.Err()
		case html.TextToken:
			if err := c.text(string(z.Raw())); err != nil {
				return err
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			c.tag(z, tt == html.SelfClosingTagToken)
		default:
			c.out.Write(z.Raw())
		}
	}
}

// text replaces each "{{ expr }}" with a content placeholder.
func (c *compiler) text(raw string) error {
	for {
		start := strings.Index(raw, "{{")
		if start < 0 {
			c.out.WriteString(raw)
			return nil
		}
		end := strings.Index(raw[start+2:], "}}")
		if end < 0 {
			return fmt.Errorf("unclosed binding near %q", truncate(raw[start:], 40))
		}
		expr := strings.TrimSpace(raw[start+2 : start+2+end])
		if expr == "" {
			return fmt.Errorf("empty binding")
		}

		c.out.WriteString(raw[:start])
		id := c.nextID()
		fmt.Fprintf(&c.out, "<!-- $%d --><!-- $/%d -->", id, id)
		c.bindings.Add(strconv.Itoa(id),
			fmt.Sprintf("lambda { |__p, __t, __c, __id| Volt::ContentBinding.new(__p, __t, __c, __id, Proc.new { %s }) }", expr))

		raw = raw[start+2+end+2:]
	}
}

type attr struct {
	key, val string
}

// tag copies a start tag, turning e-* attributes into event bindings keyed
// by the element id.
func (c *compiler) tag(z *html.Tokenizer, selfClosing bool) {
	raw := string(z.Raw())
	name, hasAttr := z.TagName()
	tagName := string(name)

	var attrs, events []attr
	id := ""
	for hasAttr {
		var k, v []byte
		k, v, hasAttr = z.TagAttr()
		a := attr{key: string(k), val: string(v)}
		switch {
		case strings.HasPrefix(a.key, "e-") && len(a.key) > 2:
			events = append(events, attr{key: strings.TrimPrefix(a.key, "e-"), val: a.val})
		case a.key == "id":
			id = a.val
			attrs = append(attrs, a)
		default:
			attrs = append(attrs, a)
		}
	}

	if len(events) == 0 {
		c.out.WriteString(raw)
		return
	}

	if id == "" {
		id = "id" + strconv.Itoa(c.nextID())
		attrs = append(attrs, attr{key: "id", val: id})
	}

	c.out.WriteString("<" + tagName)
	for _, a := range attrs {
		fmt.Fprintf(&c.out, " %s=\"%s\"", a.key, html.EscapeString(a.val))
	}
	if selfClosing {
		c.out.WriteString(" /")
	}
	c.out.WriteString(">")

	for _, ev := range events {
		c.bindings.Add(id,
			fmt.Sprintf("lambda { |__p, __t, __c, __id| Volt::EventBinding.new(__p, __t, __c, __id, %q, Proc.new {|event| %s }) }", ev.key, strings.TrimSpace(ev.val)))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
