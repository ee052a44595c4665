package api

// Settings is the document served by GET /api/app_settings.
type Settings struct {
	Title              string            `json:"title"`
	AppLogo            *string           `json:"appLogo"`
	CopyrightText      string            `json:"copyrightText"`
	FooterLinks        map[string]string `json:"footerLinks"`
	NavTheme           string            `json:"navTheme"`
	Layout             string            `json:"layout"`
	ForgetPasswordLink *string           `json:"forgetPasswordLink"`
	RegisterLink       *string           `json:"registerLink"`
}
