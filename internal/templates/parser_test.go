package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionParser_NoSections(t *testing.T) {
	set, err := NewSectionParser().Parse("\n<div class=\"x\">Hello</div>\n", "blog/main/index")
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())

	tmpl := set.Templates()[0]
	assert.Equal(t, "blog/main/index/body", tmpl.Name)
	assert.Equal(t, `<div class="x">Hello</div>`, tmpl.Markup)
	assert.Zero(t, tmpl.Bindings.Len())
}

func TestSectionParser_Sections(t *testing.T) {
	src := "<:Title>\nHome\n\n<:MainBody>\n<p>Welcome</p>\n"

	set, err := NewSectionParser().Parse(src, "blog/main/index")
	require.NoError(t, err)

	got := set.Templates()
	require.Len(t, got, 2)
	assert.Equal(t, "blog/main/index/title", got[0].Name)
	assert.Equal(t, "Home", got[0].Markup)
	assert.Equal(t, "blog/main/index/main_body", got[1].Name)
	assert.Equal(t, "<p>Welcome</p>", got[1].Markup)
}

func TestSectionParser_TextBeforeFirstSection(t *testing.T) {
	set, err := NewSectionParser().Parse("<b>intro</b>\n<:Footer>\nbye", "k")
	require.NoError(t, err)

	got := set.Templates()
	require.Len(t, got, 2)
	assert.Equal(t, "k/body", got[0].Name)
	assert.Equal(t, "k/footer", got[1].Name)
}

func TestSectionParser_DuplicateSection(t *testing.T) {
	_, err := NewSectionParser().Parse("<:Body>\na\n<:Body>\nb", "k")
	assert.ErrorContains(t, err, "duplicate section")
}

func TestSectionParser_ContentBindings(t *testing.T) {
	set, err := NewSectionParser().Parse("<p>{{ user.name }} and {{count}}</p>", "k")
	require.NoError(t, err)

	tmpl := set.Templates()[0]
	assert.Equal(t, "<p><!-- $0 --><!-- $/0 --> and <!-- $1 --><!-- $/1 --></p>", tmpl.Markup)
	assert.Equal(t, []string{"0", "1"}, tmpl.Bindings.Keys())
	assert.Contains(t, tmpl.Bindings.Get("0")[0], "Proc.new { user.name }")
	assert.Contains(t, tmpl.Bindings.Get("1")[0], "Proc.new { count }")
}

func TestSectionParser_EventBindings(t *testing.T) {
	set, err := NewSectionParser().Parse(`<button class="btn" e-click="save">Save</button><a id="go" e-click="go" e-hover="hint"></a>`, "k")
	require.NoError(t, err)

	tmpl := set.Templates()[0]
	assert.Equal(t, `<button class="btn" id="id0">Save</button><a id="go"></a>`, tmpl.Markup)
	assert.Equal(t, []string{"id0", "go"}, tmpl.Bindings.Keys())
	assert.Contains(t, tmpl.Bindings.Get("id0")[0], `"click", Proc.new {|event| save }`)
	require.Len(t, tmpl.Bindings.Get("go"), 2)
	assert.Contains(t, tmpl.Bindings.Get("go")[1], `"hover"`)
}

func TestSectionParser_PreservesRawMarkup(t *testing.T) {
	src := `<DIV data-x='a "b"'>Tom &amp; Jerry's</DIV><!-- note --><br/>`
	set, err := NewSectionParser().Parse(src, "k")
	require.NoError(t, err)
	assert.Equal(t, src, set.Templates()[0].Markup)
}

func TestSectionParser_Errors(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		msg    string
	}{
		{"unclosed", "<p>{{ oops</p>", "unclosed binding"},
		{"empty", "<p>{{ }}</p>", "empty binding"},
		{"unclosed in section", "<:Title>\n{{ x", "section title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSectionParser().Parse(tt.markup, "k")
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Title":    "title",
		"MainBody": "main_body",
		"HTML":     "html",
		"item-row": "item_row",
		"body":     "body",
	}
	for in, expected := range tests {
		assert.Equal(t, expected, snakeCase(in), in)
	}
}
