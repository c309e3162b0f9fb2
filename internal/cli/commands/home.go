package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/labshare-dev/labshare/internal/router"
	"github.com/labshare-dev/labshare/internal/session"
)

// viewEntry is how one route looks from the current session
type viewEntry struct {
	Name      string `json:"name" yaml:"name"`
	Path      string `json:"path" yaml:"path"`
	Title     string `json:"title" yaml:"title"`
	Available bool   `json:"available" yaml:"available"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

type homeView struct {
	App     string        `json:"app" yaml:"app"`
	Session session.Flags `json:"session" yaml:"session"`
	User    string        `json:"user,omitempty" yaml:"user,omitempty"`
	Role    string        `json:"role,omitempty" yaml:"role,omitempty"`
	Server  string        `json:"server,omitempty" yaml:"server,omitempty"`
	Views   []viewEntry   `json:"views" yaml:"views"`
}

// NewHomeCmd creates the home command
func NewHomeCmd(d *Deps) *cobra.Command {
	return onRoute(&cobra.Command{
		Use:   "home",
		Short: "Show the home view: who you are and which views you can open",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return d.renderHome()
		},
	}, router.HomePath)
}

func (d *Deps) renderHome() error {
	sess := d.Session()
	flags := sess.Flags()

	view := homeView{App: router.AppName, Session: flags}
	if server, err := d.Server(); err == nil {
		view.Server = fmt.Sprintf("%s (%s)", server.Alias, server.URL)
	}
	if flags.LoggedIn && sess.Profile != nil {
		view.User = sess.Profile.Name
		if view.User == "" {
			view.User = sess.Profile.ID
		}
		view.Role = string(sess.Profile.UserType)
	}

	for _, r := range router.Routes() {
		if r.Name == router.RouteNotFound {
			continue
		}
		decision := router.Guard(r, flags)
		view.Views = append(view.Views, viewEntry{
			Name:      r.Name,
			Path:      r.Path,
			Title:     r.Title,
			Available: decision.Allowed,
			Reason:    decision.Reason,
		})
	}

	return d.render(view, func(w io.Writer) {
		if view.Server != "" {
			fmt.Fprintf(w, "Server:\t%s\n", view.Server)
		}
		if flags.LoggedIn {
			fmt.Fprintf(w, "User:\t%s (%s)\n", view.User, view.Role)
		} else {
			fmt.Fprintf(w, "User:\tnot logged in (run 'labshare login')\n")
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "VIEW\tPATH\tACCESS")
		fmt.Fprintln(w, "────\t────\t──────")
		for _, v := range view.Views {
			access := "✓"
			if !v.Available {
				access = "✗ " + denialMessage(v.Reason)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", v.Title, v.Path, access)
		}
	})
}

var helpTopics = []struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}{
	{"如何预约设备?", "labshare equipment ls 查找设备, labshare timeslots available <设备ID> 查看空闲时段, 然后 labshare reservations create."},
	{"预约提交后多久审批?", "预约提交后为待审批状态, 由管理员审批. 使用 labshare reservations ls --status 0 查看待审批预约."},
	{"如何取消预约?", "labshare reservations cancel <预约ID>. 已拒绝或已取消的预约不能再次取消."},
	{"看不到审计日志?", "审计日志仅对管理员开放, 请使用管理员账号登录."},
	{"切换服务器?", "labshare select-server 选择 labshare.json 中配置的其他服务器."},
}

// NewHelpCenterCmd creates the help-center command
func NewHelpCenterCmd(d *Deps) *cobra.Command {
	return onRoute(&cobra.Command{
		Use:   "help-center",
		Short: "Frequently asked questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return d.render(helpTopics, func(w io.Writer) {
				for i, topic := range helpTopics {
					fmt.Fprintf(w, "%d. %s\n   %s\n\n", i+1, topic.Question, topic.Answer)
				}
			})
		},
	}, "/help")
}
