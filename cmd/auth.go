package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/manav03panchal/tasksync/internal/authapi"
	"github.com/manav03panchal/tasksync/internal/errors"
	"github.com/manav03panchal/tasksync/internal/model"
	"github.com/manav03panchal/tasksync/internal/validate"
)

// Auth command flags.
var (
	authFlagPassword  string
	authFlagName      string
	authFlagFirstName string
	authFlagLastName  string
	authFlagAvatar    string

	profileFlagName         string
	profileFlagFirstName    string
	profileFlagLastName     string
	profileFlagAvatar       string
	profileFlagRemoveAvatar bool
	profileFlagPassword     bool

	loginFlagGoogle bool
	loginFlagToken  string
)

// registerCmd creates an account.
var registerCmd = &cobra.Command{
	Use:     "register EMAIL",
	Aliases: []string{"signup"},
	Short:   "Create an account",
	Long: `Create an account. The password is read from --password, or prompted
for when input is a terminal, or read as the first line of input.

Registering does not sign you in; run 'tasksync login' afterwards.

Examples:
  tasksync register ann@example.com --name Ann
  echo "s3cret!" | tasksync register ann@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

// loginCmd signs in.
var loginCmd = &cobra.Command{
	Use:     "login [EMAIL]",
	Aliases: []string{"signin"},
	Short:   "Sign in",
	Long: `Sign in with email and password.

With a remote auth server you can sign in with Google instead: --google
prints the address to open in a browser, and --token signs in with the
token shown there after the redirect.

Examples:
  tasksync login ann@example.com
  tasksync login ann@example.com --password s3cret!
  tasksync login --google
  tasksync login --token eyJhbGciOi...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

// logoutCmd signs out.
var logoutCmd = &cobra.Command{
	Use:     "logout",
	Aliases: []string{"signout"},
	Short:   "Sign out",
	Args:    cobra.NoArgs,
	RunE:    runLogout,
}

// whoamiCmd shows the signed-in user.
var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Aliases: []string{"me"},
	Short:   "Show the signed-in user",
	Args:    cobra.NoArgs,
	RunE:    runWhoami,
}

// profileCmd shows or edits the profile.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your profile",
	Long: `Show your profile with task statistics, or change it with flags.

Examples:
  tasksync profile
  tasksync profile --name "Ann Lee"
  tasksync profile --avatar https://example.com/ann.png
  tasksync profile --remove-avatar
  tasksync profile --password`,
	Args: cobra.NoArgs,
	RunE: runProfile,
}

func init() {
	for _, c := range []*cobra.Command{registerCmd, loginCmd} {
		c.Flags().StringVarP(&authFlagPassword, "password", "P", "", "Password (prompted for when omitted)")
	}
	loginCmd.Flags().BoolVar(&loginFlagGoogle, "google", false, "Print the Google sign-in address (remote auth only)")
	loginCmd.Flags().StringVar(&loginFlagToken, "token", "", "Sign in with a token from the Google redirect (remote auth only)")
	loginCmd.MarkFlagsMutuallyExclusive("google", "token", "password")

	registerCmd.Flags().StringVarP(&authFlagName, "name", "n", "", "Display name")
	registerCmd.Flags().StringVar(&authFlagFirstName, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&authFlagLastName, "last-name", "", "Last name")
	registerCmd.Flags().StringVar(&authFlagAvatar, "avatar", "", "Avatar URL")

	profileCmd.Flags().StringVarP(&profileFlagName, "name", "n", "", "New display name")
	profileCmd.Flags().StringVar(&profileFlagFirstName, "first-name", "", "New first name")
	profileCmd.Flags().StringVar(&profileFlagLastName, "last-name", "", "New last name")
	profileCmd.Flags().StringVar(&profileFlagAvatar, "avatar", "", "New avatar URL (http, https or data:image)")
	profileCmd.Flags().BoolVar(&profileFlagRemoveAvatar, "remove-avatar", false, "Remove the avatar")
	profileCmd.Flags().BoolVar(&profileFlagPassword, "password", false, "Change the password (read like at login)")
	profileCmd.MarkFlagsMutuallyExclusive("avatar", "remove-avatar")

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(profileCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	email := strings.TrimSpace(args[0])
	password, err := passwordInput(cmd, "Password: ")
	if err != nil {
		return err
	}
	if err := validate.Credentials(email, password); err != nil {
		return err
	}
	if authFlagAvatar != "" {
		if err := validate.AvatarURL(authFlagAvatar); err != nil {
			return err
		}
	}
	profile := model.Profile{
		Name:      strings.TrimSpace(authFlagName),
		FirstName: strings.TrimSpace(authFlagFirstName),
		LastName:  strings.TrimSpace(authFlagLastName),
		AvatarURL: authFlagAvatar,
	}

	if ctx.Remote != nil {
		result, err := ctx.Remote.Register(cmd.Context(), authapi.RegisterRequest{
			Email:     email,
			Password:  password,
			Name:      profile.Name,
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
			AvatarURL: profile.AvatarURL,
		})
		if err != nil {
			return remoteError(err)
		}
		ctx.Toasts.Success(ctx.T("auth.registrationSuccess"))
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintUser(&result.User, true)
		}
		if result.Token == "" {
			ctx.CLIFormatter().Muted("Use 'tasksync login' to sign in.")
		}
		return nil
	}

	ok, err := ctx.AuthRepo.Register(email, password, profile)
	if err != nil {
		return errors.Wrap(err, "register")
	}
	if !ok {
		return errors.UserErrorFor(errors.ErrUserExists, "email", email)
	}

	ctx.Toasts.Success(ctx.T("auth.registrationSuccess"))
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintMessage("registered", email)
	}
	ctx.CLIFormatter().Muted("Use 'tasksync login' to sign in.")
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	if loginFlagGoogle || cmd.Flags().Changed("token") {
		return runOAuthLogin(cmd, args)
	}
	if len(args) == 0 {
		return errors.NewUserError(ctx.T("auth.fillAllFields"), "Provide an email, or use --google with a remote auth server.")
	}

	email := strings.TrimSpace(args[0])
	password, err := passwordInput(cmd, "Password: ")
	if err != nil {
		return err
	}
	if strings.TrimSpace(email) == "" || password == "" {
		return errors.NewUserError(ctx.T("auth.fillAllFields"), "Provide an email and a password.")
	}

	if ctx.Remote != nil {
		if _, err := ctx.Remote.Login(cmd.Context(), email, password); err != nil {
			return remoteError(err)
		}
	} else {
		ok, err := ctx.AuthRepo.Login(email, password)
		if err != nil {
			return errors.Wrap(err, "login")
		}
		if !ok {
			return errors.UserErrorFor(errors.ErrInvalidCredentials, "email", email)
		}
	}

	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	ctx.Toasts.Success(ctx.T("auth.loginSuccess"))
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintUser(user, ctx.RemoteEnabled())
	}
	return nil
}

// runOAuthLogin handles the two halves of Google sign-in: printing the
// address to open and accepting the token the redirect hands back.
func runOAuthLogin(cmd *cobra.Command, args []string) error {
	if ctx.Remote == nil {
		return errors.UserErrorFor(errors.ErrRemoteAuthDisabled, "", "")
	}
	if len(args) > 0 {
		return errors.NewUserErrorWithField("email", args[0], "an email cannot be combined with Google sign-in",
			"Drop the email, or drop --google and --token.")
	}

	if loginFlagGoogle {
		url := ctx.Remote.GoogleAuthURL()
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintMessage("open", url)
		}
		cli := ctx.CLIFormatter()
		cli.Println(url)
		cli.Muted("Open this address, then run 'tasksync login --token TOKEN' with the token it shows.")
		return nil
	}

	user, err := ctx.Remote.SetSessionFromOAuth(cmd.Context(), loginFlagToken)
	if err != nil {
		return remoteError(err)
	}
	ctx.Toasts.Success(ctx.T("auth.loginSuccess"))
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintUser(user, true)
	}
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	var err error
	if ctx.Remote != nil {
		err = ctx.Remote.Logout()
	} else {
		err = ctx.AuthRepo.Logout()
	}
	if err != nil {
		return errors.Wrap(err, "logout")
	}

	ctx.Toasts.Success(ctx.T("profile.logoutSuccess"))
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintMessage("ok", ctx.T("profile.logoutSuccess"))
	}
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintUser(user, ctx.RemoteEnabled())
	}

	cli := ctx.CLIFormatter()
	cli.PrintUser(user)
	if user == nil || !ctx.RemoteEnabled() {
		return nil
	}
	token, err := ctx.AuthRepo.Token()
	if err != nil || token == "" {
		return err
	}
	if exp, ok, err := authapi.TokenExpiry(token); err == nil && ok {
		cli.PrintTokenExpiry(exp, ctx.Now())
	} else if err != nil {
		ctx.Debugf("token unreadable", "error", err.Error())
	}
	return nil
}

func runProfile(cmd *cobra.Command, args []string) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	if user == nil {
		return errors.UserErrorFor(errors.ErrNotLoggedIn, "", "")
	}

	patch, message, err := buildUserPatch(cmd)
	if err != nil {
		return err
	}

	if profileFlagPassword {
		if err := changePassword(cmd); err != nil {
			return err
		}
		if message == "" {
			message = ctx.T("settings.passwordChanged")
		} else {
			message = ctx.T("settings.profileSaved")
		}
	}

	if patch != (model.UserPatch{}) {
		if ctx.Remote != nil {
			user, err = ctx.Remote.UpdateProfile(cmd.Context(), patch)
			if err != nil {
				return remoteError(err)
			}
		} else {
			user, err = ctx.AuthRepo.UpdateUser(patch)
			if err != nil {
				return errors.Wrap(err, "update profile")
			}
		}
	}

	if message != "" {
		ctx.Toasts.Success(message)
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintUser(user, ctx.RemoteEnabled())
	}

	cli := ctx.CLIFormatter()
	cli.Title(ctx.T("profile.profile"))
	cli.PrintUser(user)
	stats, err := ctx.TaskRepo.GetStats()
	if err != nil {
		return err
	}
	pending := stats.Total - stats.Completed
	rate := 0
	if stats.Total > 0 {
		rate = stats.Completed * 100 / stats.Total
	}
	cli.Printf("  %s: %d  %s: %d  %s: %d%%\n",
		ctx.T("profile.totalTasks"), stats.Total,
		ctx.T("profile.pending"), pending,
		ctx.T("profile.completionRate"), rate)
	return nil
}

// buildUserPatch collects profile flags into a patch and picks the
// feedback message for it.
func buildUserPatch(cmd *cobra.Command) (model.UserPatch, string, error) {
	var patch model.UserPatch
	var messages []string
	flags := cmd.Flags()

	if flags.Changed("name") {
		name := strings.TrimSpace(profileFlagName)
		if err := validate.Name(name); err != nil {
			return patch, "", err
		}
		patch.Name = &name
		messages = append(messages, ctx.T("profile.nameUpdated"))
	}
	if flags.Changed("first-name") {
		first := strings.TrimSpace(profileFlagFirstName)
		patch.FirstName = &first
		messages = append(messages, ctx.T("settings.profileSaved"))
	}
	if flags.Changed("last-name") {
		last := strings.TrimSpace(profileFlagLastName)
		patch.LastName = &last
		messages = append(messages, ctx.T("settings.profileSaved"))
	}
	if flags.Changed("avatar") {
		if err := validate.AvatarURL(profileFlagAvatar); err != nil {
			return patch, "", err
		}
		avatar := profileFlagAvatar
		patch.AvatarURL = &avatar
		messages = append(messages, ctx.T("profile.photoUpdated"))
	}
	if profileFlagRemoveAvatar {
		empty := ""
		patch.AvatarURL = &empty
		messages = append(messages, ctx.T("profile.photoRemoved"))
	}

	switch len(messages) {
	case 0:
		return patch, "", nil
	case 1:
		return patch, messages[0], nil
	}
	return patch, ctx.T("settings.profileSaved"), nil
}

func changePassword(cmd *cobra.Command) error {
	if ctx.Remote != nil {
		return errors.NewUserError("Password changes are not available with a remote auth server",
			"Change the password through the auth server instead.")
	}
	password, err := readPassword(ctx.T("settings.newPassword")+": ")
	if err != nil {
		return err
	}
	if err := validate.Password(password); err != nil {
		return err
	}
	ok, err := ctx.AuthRepo.ChangePassword(password)
	if err != nil {
		return errors.Wrap(err, "change password")
	}
	if !ok {
		return errors.UserErrorFor(errors.ErrNotLoggedIn, "", "")
	}
	return nil
}

// passwordInput returns --password when given and reads it otherwise.
func passwordInput(cmd *cobra.Command, prompt string) (string, error) {
	if cmd.Flags().Changed("password") {
		return authFlagPassword, nil
	}
	return readPassword(prompt)
}

// readPassword prompts without echo on a terminal and otherwise reads
// the first line of input.
func readPassword(prompt string) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(stderr, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(stderr)
		if err != nil {
			return "", errors.Wrap(err, "read password")
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(err, "read password")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// remoteError turns auth server rejections into user errors. Transport
// and server failures pass through unchanged.
func remoteError(err error) error {
	var apiErr *authapi.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.StatusCode == 401:
		return errors.NewUserError(apiErr.Message, errors.Suggestions[errors.ErrInvalidCredentials])
	case apiErr.StatusCode == 409:
		return errors.NewUserError(apiErr.Message, errors.Suggestions[errors.ErrUserExists])
	case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		return errors.NewUserError(apiErr.Message, "Check the values you entered and try again.")
	}
	return err
}
