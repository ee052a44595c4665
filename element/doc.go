// Package element defines the UI element tree that pages and callbacks
// return, and its JSON document encoding.
//
// An Element is a type tag plus named properties. Property values form a
// closed set (see Value) so that encoding is exhaustive: primitives, lists,
// maps, nested elements, and callback references created with Action.
//
//	form := element.Form(onSubmit,
//	    element.TextField("First Name", "first_name"),
//	    element.FormActions(element.SubmitButton("Submit")),
//	)
//	doc, err := element.NewEncoder(registry).EncodeElement(form)
//
// The encoded document carries the type tag under "type" and every property
// in the same object. An Action property is replaced by an object holding
// the callback identifier ("cb_uuid"), the property it was attached to
// ("role") and the endpoint the frontend posts it to ("endpoint").
package element
