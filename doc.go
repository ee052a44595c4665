// Package adminui is a low-code admin panel framework for Go.
//
// Pages, forms, menus and login flows are declared in Go; a bundled
// single-page frontend fetches their JSON description and renders it.
// Event handlers such as a form's on_submit are plain Go functions, wrapped
// as callbacks and invoked through a registry when the frontend posts a
// page action.
//
// # Quick Start
//
//	app, err := adminui.New(&adminui.Config{Secret: []byte(os.Getenv("ADMINUI_SECRET"))})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	onSubmit := callback.MustFunc(func(values map[string]any) *element.Element {
//	    return element.Notification(element.NotificationSuccess, "Saved", values["name"].(string))
//	})
//
//	app.MustPage("/", "Home", page.Func(func() []*element.Element {
//	    return []*element.Element{
//	        element.Form(onSubmit,
//	            element.TextField("Name", "name", element.Required()),
//	            element.FormActions(element.SubmitButton("Save")),
//	        ),
//	    }
//	}))
//
//	app.SetMenu(menu.New("Home", "/", menu.WithIcon("home")))
//	if err := app.ListenAndServe(ctx, ":8000"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Authorization
//
// A login handler returns an auth.LoggedInUser carrying authorization tags.
// The frontend receives a signed token and replays it in the Authorization
// header; pages and menu items declared with RequireAuth are only served to
// callers holding the tag.
//
//	app.PasswordLogin(func(ctx context.Context, username, password string) (auth.Outcome, error) {
//	    if username == "admin" && password == "admin" {
//	        return auth.LoggedInUser{DisplayName: "Admin", Auth: []string{"user", "admin"}}, nil
//	    }
//	    return auth.LoginFailed{}, nil
//	})
//
// # Sub-paths
//
// A request for /detail/42 that matches no page exactly is served by the
// /detail page, whose builder receives "42" as its sub-path:
//
//	app.MustPage("/detail", "Detail", page.SubPathFunc(func(id string) []*element.Element { ... }))
package adminui
