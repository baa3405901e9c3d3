package handler

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"fostercare/cmd/internal/backend"
	"fostercare/cmd/internal/contract"
	"fostercare/cmd/internal/guard"
	"fostercare/cmd/internal/utils"
	"fostercare/cmd/internal/utils/apierror"
	"fostercare/cmd/internal/view"
	"fostercare/cmd/internal/web"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const filesSlug = "files"

// DefaultPageRoute serves the server-rendered pages: the auth screens and the
// tabbed dashboard.
type DefaultPageRoute struct {
	AuthService   AuthService
	Sections      map[string]RecordSection
	Files         backend.FileStore
	Guard         *guard.Guard
	SecureCookies bool
}

func NewPageRoute(authService AuthService, files backend.FileStore, g *guard.Guard, secureCookies bool, sections ...RecordSection) *DefaultPageRoute {
	bySlug := make(map[string]RecordSection, len(sections))
	for _, s := range sections {
		bySlug[s.Slug()] = s
	}

	return &DefaultPageRoute{
		AuthService:   authService,
		Sections:      bySlug,
		Files:         files,
		Guard:         g,
		SecureCookies: secureCookies,
	}
}

func (p *DefaultPageRoute) Index(c echo.Context) error {
	if _, apierr := p.AuthService.Session(c.Request().Context(), utils.TokenFromRequest(c)); apierr == nil {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return c.Redirect(http.StatusSeeOther, view.LoginPath)
}

func (p *DefaultPageRoute) LoginPage(c echo.Context) error {
	form := web.AuthForm{Email: c.QueryParam("email")}
	if c.QueryParam("confirmed") != "" {
		form.Info = "Your email is confirmed, you can sign in now."
	}
	return c.Render(http.StatusOK, web.LoginPage, form)
}

func (p *DefaultPageRoute) Login(c echo.Context) error {
	var req contract.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusBadRequest, web.LoginPage, web.AuthForm{Error: apierror.MalformedBodyError.Describe()})
	}

	_, sess, apierr := p.AuthService.Login(c.Request().Context(), &req)
	if apierr == apierror.IDPUserNotConfirmedError {
		return c.Redirect(http.StatusSeeOther, confirmURL(req.Email))
	}
	if apierr != nil {
		return c.Render(apierr.Code(), web.LoginPage, web.AuthForm{Email: req.Email, Error: apierr.Describe()})
	}

	c.SetCookie(&http.Cookie{
		Name:     utils.SessionCookieName,
		Value:    sess.AccessToken,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   p.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (p *DefaultPageRoute) SignupPage(c echo.Context) error {
	return c.Render(http.StatusOK, web.SignupPage, web.AuthForm{})
}

func (p *DefaultPageRoute) Signup(c echo.Context) error {
	var req contract.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusBadRequest, web.SignupPage, web.AuthForm{Error: apierror.MalformedBodyError.Describe()})
	}

	if _, apierr := p.AuthService.SignUp(c.Request().Context(), &req); apierr != nil {
		return c.Render(apierr.Code(), web.SignupPage, web.AuthForm{Email: req.Email, Error: apierr.Describe()})
	}
	return c.Redirect(http.StatusSeeOther, confirmURL(req.Email))
}

func (p *DefaultPageRoute) ConfirmPage(c echo.Context) error {
	return c.Render(http.StatusOK, web.ConfirmPage, web.AuthForm{Email: c.QueryParam("email")})
}

func (p *DefaultPageRoute) Confirm(c echo.Context) error {
	var req contract.ConfirmSignupRequest
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusBadRequest, web.ConfirmPage, web.AuthForm{Error: apierror.MalformedBodyError.Describe()})
	}

	if apierr := p.AuthService.ConfirmSignup(c.Request().Context(), &req); apierr != nil {
		return c.Render(apierr.Code(), web.ConfirmPage, web.AuthForm{Email: req.Email, Error: apierr.Describe()})
	}
	return c.Redirect(http.StatusSeeOther, view.LoginPath+"?confirmed=1&email="+url.QueryEscape(req.Email))
}

func (p *DefaultPageRoute) ResendConfirmation(c echo.Context) error {
	var req contract.ResendConfirmRequest
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusBadRequest, web.ConfirmPage, web.AuthForm{Error: apierror.MalformedBodyError.Describe()})
	}

	if apierr := p.AuthService.ResendConfirmation(c.Request().Context(), &req); apierr != nil {
		return c.Render(apierr.Code(), web.ConfirmPage, web.AuthForm{Email: req.Email, Error: apierr.Describe()})
	}
	return c.Render(http.StatusOK, web.ConfirmPage, web.AuthForm{Email: req.Email, Info: "A new code has been sent."})
}

func (p *DefaultPageRoute) Logout(c echo.Context) error {
	if token := utils.TokenFromRequest(c); token != "" {
		if apierr := p.AuthService.Logout(c.Request().Context(), token); apierr != nil {
			log.Warnf("sign out failed: %s", apierr.Describe())
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     utils.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   p.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, view.LoginPath)
}

// Dashboard renders the active tab. A tab query parameter switches and
// persists the active tab.
func (p *DefaultPageRoute) Dashboard(c echo.Context) error {
	tabs := p.tabState(c)
	if tab := c.QueryParam("tab"); tab != "" {
		tabs.Select(tab)
	}
	return p.render(c, dashboardState{tab: tabs.Active()})
}

func (p *DefaultPageRoute) NewRecord(c echo.Context) error {
	section, tab, ok := p.section(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}

	form := section.Blank()
	form.Token = p.Guard.Token()
	return p.render(c, dashboardState{tab: tab, editor: form})
}

func (p *DefaultPageRoute) EditRecord(c echo.Context) error {
	section, tab, ok := p.section(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}

	form, err := section.Edit(c.Request().Context(), c.Param("id"))
	if err != nil {
		return p.render(c, dashboardState{tab: tab, err: recordError(err), status: statusOf(err)})
	}

	form.Token = p.Guard.Token()
	return p.render(c, dashboardState{tab: tab, editor: form})
}

func (p *DefaultPageRoute) CreateRecord(c echo.Context) error {
	return p.saveRecord(c, "")
}

func (p *DefaultPageRoute) UpdateRecord(c echo.Context) error {
	return p.saveRecord(c, c.Param("id"))
}

func (p *DefaultPageRoute) saveRecord(c echo.Context, id string) error {
	section, tab, ok := p.section(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}

	values, err := c.FormParams()
	if err != nil {
		return p.render(c, dashboardState{tab: tab, err: apierror.MalformedBodyError.Describe(), status: http.StatusBadRequest})
	}

	photo, err := pickedPhoto(c)
	if err != nil {
		return p.render(c, dashboardState{tab: tab, err: err.Error(), status: http.StatusBadRequest})
	}

	val, err, repeated := p.Guard.Do(c.FormValue("token"), func() (any, error) {
		return section.Save(c.Request().Context(), id, firstValues(values), photo)
	})

	// Repeated posts share the first post's form, render a copy.
	if form, _ := val.(*web.EditorForm); form != nil {
		shown := *form
		shown.Token = p.Guard.Token()
		return p.render(c, dashboardState{tab: tab, editor: &shown, status: http.StatusUnprocessableEntity})
	}

	if err != nil && !repeated {
		return p.render(c, dashboardState{tab: tab, err: recordError(err), status: statusOf(err)})
	}
	return c.Redirect(http.StatusSeeOther, tabURL(tab))
}

func (p *DefaultPageRoute) DeleteRecord(c echo.Context) error {
	section, tab, ok := p.section(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}

	if err := section.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return p.render(c, dashboardState{tab: tab, err: recordError(err), status: statusOf(err)})
	}
	return c.Redirect(http.StatusSeeOther, tabURL(tab))
}

func (p *DefaultPageRoute) UploadFile(c echo.Context) error {
	tab := p.selectTab(c, filesSlug)
	ctx := c.Request().Context()

	fm := view.NewFileManager(p.Files)
	if err := fm.Load(ctx); err != nil {
		return p.render(c, dashboardState{tab: tab, err: fm.Err, status: http.StatusInternalServerError})
	}

	if header, err := c.FormFile("file"); err == nil {
		data, err := readLimited(header, view.MaxUploadSize)
		if err != nil {
			log.Errorf("failed to read upload: %v", err)
			return p.render(c, dashboardState{tab: tab, err: "Upload failed: " + err.Error(), status: http.StatusBadRequest})
		}
		fm.Select(header.Filename, header.Header.Get(echo.HeaderContentType), data)
	}
	fm.FileName = c.FormValue("name")

	_, err, repeated := p.Guard.Do(c.FormValue("token"), func() (any, error) {
		return nil, fm.Upload(ctx)
	})
	if repeated || err == nil {
		return c.Redirect(http.StatusSeeOther, tabURL(tab))
	}

	status := http.StatusInternalServerError
	if errors.Is(err, view.ErrInvalidUpload) || errors.Is(err, view.ErrInvalidName) {
		status = http.StatusBadRequest
	} else if errors.Is(err, view.ErrFileTooLarge) {
		status = http.StatusRequestEntityTooLarge
	} else if errors.Is(err, view.ErrFileExists) {
		status = http.StatusConflict
	}
	return p.render(c, dashboardState{tab: tab, err: fm.Err, fileName: fm.FileName, status: status})
}

func (p *DefaultPageRoute) DeleteFile(c echo.Context) error {
	tab := p.selectTab(c, filesSlug)

	fm := view.NewFileManager(p.Files)
	if err := fm.Delete(c.Request().Context(), fileParam(c)); err != nil {
		return p.render(c, dashboardState{tab: tab, err: fm.Err, status: http.StatusInternalServerError})
	}
	return c.Redirect(http.StatusSeeOther, tabURL(tab))
}

func (p *DefaultPageRoute) ViewFile(c echo.Context) error {
	tab := p.selectTab(c, filesSlug)

	fm := view.NewFileManager(p.Files)
	link, err := fm.ViewURL(fileParam(c))
	if err != nil {
		return p.render(c, dashboardState{tab: tab, err: fm.Err, status: http.StatusNotFound})
	}
	return c.Redirect(http.StatusFound, link)
}

type dashboardState struct {
	tab      view.Tab
	editor   *web.EditorForm
	fileName string
	err      string
	status   int
}

func (p *DefaultPageRoute) render(c echo.Context, st dashboardState) error {
	ctx := c.Request().Context()
	page := &web.Dashboard{
		Tabs:   view.Tabs,
		Active: st.tab,
		Error:  st.err,
		Editor: st.editor,
	}

	if sess, apierr := utils.GetSessionFromContext(c); apierr == nil {
		page.Email = sess.Email
	}

	pageNo := intQuery(c, "page", 1)
	order := c.QueryParam("sort")

	if st.tab.Slug == filesSlug {
		files := p.filePanel(ctx, pageNo, order, st.fileName)
		page.Files = files.panel
		if page.Error == "" {
			page.Error = files.err
		}
	} else if section, ok := p.Sections[st.tab.Slug]; ok {
		panel, err := section.Panel(ctx, pageNo, order)
		if err != nil && page.Error == "" {
			page.Error = err.Error()
		}
		page.Records = panel
	}

	status := st.status
	if status == 0 {
		status = http.StatusOK
	}
	return c.Render(status, web.DashboardPage, page)
}

type filesView struct {
	panel *web.FilePanel
	err   string
}

func (p *DefaultPageRoute) filePanel(ctx context.Context, pageNo int, order, fileName string) filesView {
	fm := view.NewFileManager(p.Files)
	if order != "" {
		fm.Order = view.ParseOrder(order)
	}
	_ = fm.Load(ctx)
	fm.GoTo(pageNo)

	return filesView{
		panel: &web.FilePanel{
			Files: fm.Visible(),
			Pager: web.Pager{
				Slug:      filesSlug,
				Page:      fm.Page,
				PageCount: fm.PageCount(),
				HasPrev:   fm.HasPrev(),
				HasNext:   fm.HasNext(),
				Order:     fm.Order,
			},
			FileName: fileName,
			Token:    p.Guard.Token(),
		},
		err: fm.Err,
	}
}

func (p *DefaultPageRoute) tabState(c echo.Context) *view.TabState {
	return view.NewTabState(&cookieStorage{c: c, secure: p.SecureCookies})
}

// selectTab activates and persists the tab a route belongs to.
func (p *DefaultPageRoute) selectTab(c echo.Context, slug string) view.Tab {
	tabs := p.tabState(c)
	tabs.Select(slug)
	return tabs.Active()
}

func (p *DefaultPageRoute) section(c echo.Context) (RecordSection, view.Tab, bool) {
	section, ok := p.Sections[c.Param("tab")]
	if !ok {
		return nil, view.Tab{}, false
	}
	return section, p.selectTab(c, section.Slug()), true
}

// cookieStorage keeps the dashboard's session storage in session cookies.
type cookieStorage struct {
	c      echo.Context
	secure bool
}

func (s *cookieStorage) Get(key string) (string, bool) {
	cookie, err := s.c.Cookie(key)
	if err != nil {
		return "", false
	}

	v, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return "", false
	}
	return v, true
}

func (s *cookieStorage) Set(key, value string) {
	s.c.SetCookie(&http.Cookie{
		Name:     key,
		Value:    url.QueryEscape(value),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func pickedPhoto(c echo.Context) (*PickedPhoto, error) {
	header, err := c.FormFile("photo")
	if err != nil {
		// No photo picked.
		return nil, nil
	}

	data, err := readLimited(header, view.MaxUploadSize)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	return &PickedPhoto{Data: data, ContentType: mimetype.Detect(data).String()}, nil
}

// readLimited reads at most limit+1 bytes so callers can tell an oversized
// upload from one that fits.
func readLimited(header *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, limit+1))
}

func firstValues(values url.Values) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		if k == "token" || len(v) == 0 {
			continue
		}
		out[k] = v[0]
	}
	return out
}

func recordError(err error) string {
	if errors.Is(err, backend.ErrNotFound) {
		return "This record no longer exists."
	}
	return err.Error()
}

func statusOf(err error) int {
	if errors.Is(err, backend.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, view.ErrSubmitInFlight) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func tabURL(tab view.Tab) string {
	return "/dashboard?tab=" + tab.Slug
}

func confirmURL(email string) string {
	return "/auth/confirm-email?email=" + url.QueryEscape(strings.TrimSpace(email))
}
