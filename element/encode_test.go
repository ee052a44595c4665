package element

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youssefsiam38/adminui/callback"
)

func TestEncoder_EncodeElement_Flat(t *testing.T) {
	enc := NewEncoder(nil)

	doc, err := enc.EncodeElement(New("Stat",
		Attr("title", String("Users")),
		Attr("value", Int(42)),
		Attr("ratio", Float(0.5)),
		Attr("live", Bool(true)),
		Attr("unit", Null),
	))
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"type":  "Stat",
		"title": "Users",
		"value": int64(42),
		"ratio": 0.5,
		"live":  true,
		"unit":  nil,
	}, doc)
}

func TestEncoder_EncodeElement_NestedOrder(t *testing.T) {
	enc := NewEncoder(nil)

	card := Card("Profile", []*Element{
		Paragraph("first"),
		Row(Paragraph("second"), Paragraph("third")),
		Paragraph("fourth"),
	})

	doc, err := enc.EncodeElement(card)
	require.NoError(t, err)

	content := doc["content"].([]any)
	require.Len(t, content, 3)
	assert.Equal(t, "first", content[0].(map[string]any)["text"])
	assert.Equal(t, "fourth", content[2].(map[string]any)["text"])

	row := content[1].(map[string]any)
	assert.Equal(t, "Row", row["type"])
	inner := row["content"].([]any)
	require.Len(t, inner, 2)
	assert.Equal(t, map[string]any{"type": "Paragraph", "text": "second"}, inner[0])
	assert.Equal(t, map[string]any{"type": "Paragraph", "text": "third"}, inner[1])
}

func TestEncoder_EncodeElement_Action(t *testing.T) {
	reg := callback.NewRegistry()
	onSubmit := callback.MustFunc(func(form map[string]any) {})
	enc := NewEncoder(reg)

	doc, err := enc.EncodeElement(Form(onSubmit, TextField("Name", "name")))
	require.NoError(t, err)

	ref := doc["on_submit"].(map[string]any)
	assert.Equal(t, reg.ID(onSubmit), ref[CallbackIDKey])
	assert.Equal(t, "on_submit", ref[CallbackRoleKey])
	assert.Equal(t, PageActionEndpoint, ref[CallbackCallKey])

	// Encoding again reuses the identifier.
	again, err := enc.EncodeElement(Form(onSubmit))
	require.NoError(t, err)
	assert.Equal(t, ref[CallbackIDKey], again["on_submit"].(map[string]any)[CallbackIDKey])
	assert.Equal(t, 1, reg.Len())
}

func TestEncoder_EncodeElement_Errors(t *testing.T) {
	loop := New("Loop")
	loop.props["self"] = loop

	tests := []struct {
		name string
		enc  *Encoder
		el   *Element
		want error
	}{
		{"nil element", NewEncoder(nil), nil, ErrNilValue},
		{"nil value", NewEncoder(nil), New("X", Attr("v", nil)), ErrNilValue},
		{"nil child", NewEncoder(nil), Row(Paragraph("a"), nil), ErrNilValue},
		{"nil callback", NewEncoder(callback.NewRegistry()), Form(nil), ErrNilValue},
		{"nan", NewEncoder(nil), New("X", Attr("v", Float(math.NaN()))), ErrUnsupportedValue},
		{"infinity in list", NewEncoder(nil), New("X", Attr("v", List{Float(math.Inf(1))})), ErrUnsupportedValue},
		{"reserved type", NewEncoder(nil), New("X", Attr("type", String("Y"))), ErrReservedProperty},
		{"action without registry", NewEncoder(nil), Form(callback.MustFunc(func() {})), ErrNoRegistry},
		{"cycle", NewEncoder(nil), loop, ErrCycle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.enc.EncodeElement(tt.el)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEncoder_SharedChildIsNotACycle(t *testing.T) {
	shared := Paragraph("same")
	doc, err := NewEncoder(nil).EncodeElement(Row(shared, shared))
	require.NoError(t, err)
	assert.Len(t, doc["content"], 2)
}

func TestEncoder_EncodeElements_Empty(t *testing.T) {
	out, err := NewEncoder(nil).EncodeElements(nil)
	require.NoError(t, err)
	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))
}

func TestEncoder_EncodeResult(t *testing.T) {
	enc := NewEncoder(nil)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"element", Notification(NotificationSuccess, "Saved", "done"),
			`{"type":"Notification","notification_type":"success","title":"Saved","text":"done"}`},
		{"element slice", []*Element{NavigateTo("/users")}, `[{"type":"NavigateTo","url":"/users"}]`},
		{"value", Strings("a", "b"), `["a","b"]`},
		{"plain struct", struct {
			OK bool `json:"ok"`
		}{true}, `{"ok":true}`},
		{"plain string", "hello", `"hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := enc.EncodeResult(tt.in)
			require.NoError(t, err)
			b, err := json.Marshal(out)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}

func TestEncoder_EncodeResult_NilAndUnsupported(t *testing.T) {
	enc := NewEncoder(nil)

	out, err := enc.EncodeResult(nil)
	assert.NoError(t, err)
	assert.Nil(t, out)

	var nilEl *Element
	out, err = enc.EncodeResult(nilEl)
	assert.NoError(t, err)
	assert.Nil(t, out)

	_, err = enc.EncodeResult(make(chan int))
	assert.ErrorIs(t, err, ErrUnsupportedValue)

	type step struct {
		Next *Element `json:"next"`
	}
	nested := map[string]any{
		"slice of any":    []any{NavigateTo("/users")},
		"map":             map[string]any{"next": NavigateTo("/users")},
		"struct field":    step{Next: NavigateTo("/users")},
		"element value":   []Element{*NavigateTo("/users")},
		"pointer in list": []any{1, "two", NavigateTo("/users")},
	}
	for name, v := range nested {
		t.Run(name, func(t *testing.T) {
			out, err := enc.EncodeResult(v)
			assert.ErrorIs(t, err, ErrUnsupportedValue)
			assert.Nil(t, out)
		})
	}
}

func TestEncoder_EncodeResult_ElementValue(t *testing.T) {
	enc := NewEncoder(nil)

	out, err := enc.EncodeResult(*NavigateTo("/users"))
	require.NoError(t, err)
	doc, ok := out.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "NavigateTo", doc[TypeKey])
}

func TestElement_MarshalJSONFails(t *testing.T) {
	_, err := json.Marshal(Paragraph("hi"))
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}
