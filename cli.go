package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"student_manager/database"
	"student_manager/database/seeders"
	"student_manager/models"
	"student_manager/services"
	"student_manager/storage"
	"student_manager/utils"

	"gorm.io/gorm"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db       *gorm.DB
	out      io.Writer
	exporter *storage.ExportService
}

func newCommandLine(db *gorm.DB, out io.Writer, exporter *storage.ExportService) *commandLine {
	return &commandLine{db: db, out: out, exporter: exporter}
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate                                         - create or update the tables")
	fmt.Fprintln(cli.out, "  seed                                            - fill an empty store with demo data")
	fmt.Fprintln(cli.out, "  startup                                         - run the notification checks done at start")
	fmt.Fprintln(cli.out, "  refresh                                         - run the notification checks now")
	fmt.Fprintln(cli.out, "  status                                          - check the store and count records")
	fmt.Fprintln(cli.out, "  student add|list|update|delete|groups [flags]   - manage students")
	fmt.Fprintln(cli.out, "  teacher add|list|update|delete|groups [flags]   - manage teachers")
	fmt.Fprintln(cli.out, "  group add|list|update|delete|members [flags]    - manage groups")
	fmt.Fprintln(cli.out, "  enroll -student ID -group ID                    - enroll a student")
	fmt.Fprintln(cli.out, "  unenroll -id ID                                 - remove an enrollment")
	fmt.Fprintln(cli.out, "  pay -student ID -group ID -amount N [-date D]   - record a payment")
	fmt.Fprintln(cli.out, "  payments [-student ID] [-group ID]              - list payments")
	fmt.Fprintln(cli.out, "  attend -student ID -group ID [-date D] [-status present|absent|excused]")
	fmt.Fprintln(cli.out, "  attendance [-student ID] [-group ID] [-date D]  - list attendance")
	fmt.Fprintln(cli.out, "  summary -student ID -group ID                   - attendance summary")
	fmt.Fprintln(cli.out, "  notifications [-unread] [-student ID]           - list notifications")
	fmt.Fprintln(cli.out, "  read -id ID | read-all | dismiss -id ID         - handle notifications")
	fmt.Fprintln(cli.out, "  settings                                        - show notification settings")
	fmt.Fprintln(cli.out, "  set -key KEY -value VALUE                       - change a notification setting")
	fmt.Fprintln(cli.out, "  report -name students|groups|payments|attendance")
	fmt.Fprintln(cli.out, "  export -name students|groups|payments|attendance")
}

func (cli *commandLine) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

// parse turns flag's own help result into errHelp
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelp
		}
		return err
	}
	return nil
}

// setFlags names the flags given on the command line
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func usage(fs *flag.FlagSet) error {
	fs.Usage()
	return errHelp
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	rest := args[2:]
	switch args[1] {
	case "migrate":
		if err := database.AutoMigrate(cli.db); err != nil {
			return err
		}
		if err := database.SeedSettings(cli.db); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "database is up to date")
		return nil
	case "seed":
		return seeders.SeedAll(cli.db)
	case "startup":
		return cli.startup()
	case "refresh":
		return cli.refresh()
	case "status":
		return cli.status()
	case "student":
		return cli.student(rest)
	case "teacher":
		return cli.teacher(rest)
	case "group":
		return cli.group(rest)
	case "enroll":
		return cli.enroll(rest)
	case "unenroll":
		return cli.unenroll(rest)
	case "pay":
		return cli.pay(rest)
	case "payments":
		return cli.payments(rest)
	case "attend":
		return cli.attend(rest)
	case "attendance":
		return cli.attendance(rest)
	case "summary":
		return cli.summary(rest)
	case "notifications":
		return cli.notifications(rest)
	case "read":
		return cli.read(rest)
	case "read-all":
		return cli.readAll()
	case "dismiss":
		return cli.dismiss(rest)
	case "settings":
		return cli.settings()
	case "set":
		return cli.set(rest)
	case "report":
		return cli.report(rest)
	case "export":
		return cli.export(rest)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) startup() error {
	report, err := services.NewNotificationScheduler(cli.db).CheckOnStartup()
	if err != nil {
		return err
	}
	cli.printRefresh(report)
	if !report.ShowPrompt {
		return nil
	}
	fmt.Fprintf(cli.out, "\nYou have %d unread notifications:\n", report.UnreadCount)
	return cli.listNotifications(services.NotificationFilter{UnreadOnly: true})
}

func (cli *commandLine) refresh() error {
	report, err := services.NewNotificationScheduler(cli.db).Refresh()
	if err != nil {
		return err
	}
	cli.printRefresh(report)
	return nil
}

func (cli *commandLine) status() error {
	report := services.NewHealthService(cli.db).Report()
	fmt.Fprintf(cli.out, "status: %s (%s)\n", report.Status, report.Environment)
	for _, check := range report.Checks {
		line := fmt.Sprintf("  %-14s %-5s %dms", check.Name, check.Status, check.LatencyMs)
		if check.Error != "" {
			line += "  " + check.Error
		}
		fmt.Fprintln(cli.out, line)
	}
	for _, name := range services.CountedTables() {
		if n, ok := report.Records[name]; ok {
			fmt.Fprintf(cli.out, "  %-14s %d\n", name, n)
		}
	}
	if report.Status == "critical" {
		return errors.New("store is not reachable")
	}
	return nil
}

func (cli *commandLine) printRefresh(r services.StartupReport) {
	if r.Overdue.Skipped {
		fmt.Fprintln(cli.out, "payment alerts are disabled")
	} else {
		fmt.Fprintf(cli.out, "payment reminders: %d created, %d cleared\n", r.Overdue.Created, r.Overdue.Removed)
	}
	fmt.Fprintf(cli.out, "attendance milestones: %d created\n", r.Milestones)
	fmt.Fprintf(cli.out, "unread notifications: %d\n", r.UnreadCount)
}

func (cli *commandLine) student(args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}
	svc := services.NewStudentService(cli.db)

	fs := cli.flagSet("student " + args[0])
	id := fs.Uint("id", 0, "student id")
	name := fs.String("name", "", "full name")
	phone := fs.String("phone", "", "phone number")
	email := fs.String("email", "", "email address")
	address := fs.String("address", "", "postal address")
	search := fs.String("search", "", "filter by name, phone or email")
	if err := parse(fs, args[1:]); err != nil {
		return err
	}
	in := services.StudentInput{Name: *name, Phone: *phone, Email: *email, Address: *address}

	switch args[0] {
	case "add":
		st, err := svc.Create(in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "student %d created\n", st.ID)
		return nil
	case "update":
		if *id == 0 {
			return usage(fs)
		}
		current, err := svc.Get(*id)
		if err != nil {
			return err
		}
		set := setFlags(fs)
		upd := services.StudentInput{Name: current.Name, Phone: current.Phone, Email: current.Email, Address: current.Address}
		if set["name"] {
			upd.Name = *name
		}
		if set["phone"] {
			upd.Phone = *phone
		}
		if set["email"] {
			upd.Email = *email
		}
		if set["address"] {
			upd.Address = *address
		}
		if _, err := svc.Update(*id, upd); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "student %d updated\n", *id)
		return nil
	case "delete":
		if *id == 0 {
			return usage(fs)
		}
		if err := svc.Delete(*id); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "student %d deleted\n", *id)
		return nil
	case "list":
		students, err := svc.List(*search)
		if err != nil {
			return err
		}
		for _, st := range students {
			fmt.Fprintf(cli.out, "%4d  %-30s %-16s %s\n", st.ID, st.Name, st.Phone, st.Email)
		}
		return nil
	case "groups":
		if *id == 0 {
			return usage(fs)
		}
		groups, err := svc.Groups(*id)
		if err != nil {
			return err
		}
		for _, g := range groups {
			fmt.Fprintf(cli.out, "%4d  %-24s joined %s  attendance %d/%d (%.1f%%)\n",
				g.Group.ID, g.Group.Name, g.JoinedAt.Format(time.DateOnly),
				g.Attendance.Present, g.Attendance.Total, g.Attendance.Percentage)
		}
		return nil
	}
	cli.printUsage()
	return errHelp
}

func (cli *commandLine) teacher(args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}
	svc := services.NewTeacherService(cli.db)

	fs := cli.flagSet("teacher " + args[0])
	id := fs.Uint("id", 0, "teacher id")
	name := fs.String("name", "", "full name")
	phone := fs.String("phone", "", "phone number")
	email := fs.String("email", "", "email address")
	spec := fs.String("specialization", "", "subject specialization")
	if err := parse(fs, args[1:]); err != nil {
		return err
	}
	in := services.TeacherInput{Name: *name, Phone: *phone, Email: *email, Specialization: *spec}

	switch args[0] {
	case "add":
		tc, err := svc.Create(in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "teacher %d created\n", tc.ID)
		return nil
	case "update":
		if *id == 0 {
			return usage(fs)
		}
		current, err := svc.Get(*id)
		if err != nil {
			return err
		}
		set := setFlags(fs)
		upd := services.TeacherInput{Name: current.Name, Phone: current.Phone, Email: current.Email, Specialization: current.Specialization}
		if set["name"] {
			upd.Name = *name
		}
		if set["phone"] {
			upd.Phone = *phone
		}
		if set["email"] {
			upd.Email = *email
		}
		if set["specialization"] {
			upd.Specialization = *spec
		}
		if _, err := svc.Update(*id, upd); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "teacher %d updated\n", *id)
		return nil
	case "delete":
		if *id == 0 {
			return usage(fs)
		}
		if err := svc.Delete(*id); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "teacher %d deleted\n", *id)
		return nil
	case "list":
		teachers, err := svc.List()
		if err != nil {
			return err
		}
		for _, tc := range teachers {
			fmt.Fprintf(cli.out, "%4d  %-30s %-20s %d groups\n", tc.ID, tc.Name, tc.Specialization, tc.GroupCount)
		}
		return nil
	case "groups":
		if *id == 0 {
			return usage(fs)
		}
		groups, err := svc.Groups(*id)
		if err != nil {
			return err
		}
		for _, g := range groups {
			fmt.Fprintf(cli.out, "%4d  %s\n", g.ID, g.Name)
		}
		return nil
	}
	cli.printUsage()
	return errHelp
}

func (cli *commandLine) group(args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}
	svc := services.NewGroupService(cli.db)

	fs := cli.flagSet("group " + args[0])
	id := fs.Uint("id", 0, "group id")
	name := fs.String("name", "", "group name")
	subject := fs.String("subject", "", "subject taught")
	teacherID := fs.Uint("teacher", 0, "teacher id, 0 for none")
	schedule := fs.String("schedule", "", "free text schedule")
	fee := fs.String("fee", "0", "fee per period")
	if err := parse(fs, args[1:]); err != nil {
		return err
	}

	buildInput := func() (services.GroupInput, error) {
		amount, err := utils.ParseAmount("fee", *fee)
		if err != nil {
			return services.GroupInput{}, err
		}
		in := services.GroupInput{Name: *name, Subject: *subject, Schedule: *schedule, Fee: amount}
		if *teacherID != 0 {
			tid := *teacherID
			in.TeacherID = &tid
		}
		return in, nil
	}

	switch args[0] {
	case "add":
		in, err := buildInput()
		if err != nil {
			return err
		}
		g, err := svc.Create(in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "group %d created\n", g.ID)
		return nil
	case "update":
		if *id == 0 {
			return usage(fs)
		}
		current, err := svc.Get(*id)
		if err != nil {
			return err
		}
		set := setFlags(fs)
		in := services.GroupInput{
			Name:      current.Name,
			Subject:   current.Subject,
			TeacherID: current.TeacherID,
			Schedule:  current.Schedule,
			Fee:       current.Fee,
		}
		if set["name"] {
			in.Name = *name
		}
		if set["subject"] {
			in.Subject = *subject
		}
		if set["schedule"] {
			in.Schedule = *schedule
		}
		if set["fee"] {
			if in.Fee, err = utils.ParseAmount("fee", *fee); err != nil {
				return err
			}
		}
		if set["teacher"] {
			in.TeacherID = nil
			if *teacherID != 0 {
				tid := *teacherID
				in.TeacherID = &tid
			}
		}
		if _, err := svc.Update(*id, in); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "group %d updated\n", *id)
		return nil
	case "delete":
		if *id == 0 {
			return usage(fs)
		}
		if err := svc.Delete(*id); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "group %d deleted\n", *id)
		return nil
	case "list":
		groups, err := svc.List()
		if err != nil {
			return err
		}
		for _, g := range groups {
			dto := utils.ToGroupDTO(g.Group)
			fmt.Fprintf(cli.out, "%4d  %-24s %-16s %-20s %10.2f  %d students\n",
				dto.ID, dto.Name, dto.Subject, dto.TeacherName, dto.Fee, g.MemberCount)
		}
		return nil
	case "members":
		if *id == 0 {
			return usage(fs)
		}
		members, err := svc.Members(*id)
		if err != nil {
			return err
		}
		for _, m := range members {
			fmt.Fprintf(cli.out, "%4d  %-30s joined %s\n", m.Student.ID, m.Student.Name, m.JoinedAt.Format(time.DateOnly))
		}
		return nil
	}
	cli.printUsage()
	return errHelp
}

func (cli *commandLine) enroll(args []string) error {
	fs := cli.flagSet("enroll")
	studentID := fs.Uint("student", 0, "student id")
	groupID := fs.Uint("group", 0, "group id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *studentID == 0 || *groupID == 0 {
		return usage(fs)
	}
	e, err := services.NewEnrollmentService(cli.db).Enroll(*studentID, *groupID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "enrollment %d created\n", e.ID)
	return nil
}

func (cli *commandLine) unenroll(args []string) error {
	fs := cli.flagSet("unenroll")
	id := fs.Uint("id", 0, "enrollment id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id == 0 {
		return usage(fs)
	}
	if err := services.NewEnrollmentService(cli.db).Unenroll(*id); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "enrollment %d removed\n", *id)
	return nil
}

func parseDateFlag(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return utils.Today(), nil
	}
	d, err := utils.ParseDate(s)
	if err != nil {
		return time.Time{}, utils.NewValidationError(utils.FieldError{Field: "date", Error: err.Error()})
	}
	return d, nil
}

func (cli *commandLine) pay(args []string) error {
	fs := cli.flagSet("pay")
	studentID := fs.Uint("student", 0, "student id")
	groupID := fs.Uint("group", 0, "group id")
	amount := fs.String("amount", "", "amount paid")
	date := fs.String("date", "", "payment date, defaults to today")
	notes := fs.String("notes", "", "free text notes")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *studentID == 0 || *groupID == 0 {
		return usage(fs)
	}

	value, err := utils.ParseAmount("amount", *amount)
	if err != nil {
		return err
	}
	day, err := parseDateFlag(*date)
	if err != nil {
		return err
	}

	p, err := services.NewNotificationScheduler(cli.db).RecordPayment(services.PaymentInput{
		StudentID:   *studentID,
		GroupID:     *groupID,
		Amount:      value,
		PaymentDate: day,
		Notes:       *notes,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "payment %d recorded\n", p.ID)
	return nil
}

func (cli *commandLine) payments(args []string) error {
	fs := cli.flagSet("payments")
	studentID := fs.Uint("student", 0, "student id")
	groupID := fs.Uint("group", 0, "group id")
	if err := parse(fs, args); err != nil {
		return err
	}
	list, err := services.NewPaymentService(cli.db).List(services.PaymentFilter{StudentID: *studentID, GroupID: *groupID})
	if err != nil {
		return err
	}
	for _, p := range list {
		var student, group string
		if p.Student != nil {
			student = p.Student.Name
		}
		if p.Group != nil {
			group = p.Group.Name
		}
		fmt.Fprintf(cli.out, "%4d  %s  %-24s %-20s %10.2f  %s\n",
			p.ID, time.Time(p.PaymentDate).Format(time.DateOnly), student, group, p.Amount, p.Notes)
	}
	return nil
}

func (cli *commandLine) attend(args []string) error {
	fs := cli.flagSet("attend")
	studentID := fs.Uint("student", 0, "student id")
	groupID := fs.Uint("group", 0, "group id")
	date := fs.String("date", "", "attendance date, defaults to today")
	status := fs.String("status", string(models.AttendancePresent), "present, absent or excused")
	notes := fs.String("notes", "", "free text notes")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *studentID == 0 || *groupID == 0 {
		return usage(fs)
	}
	day, err := parseDateFlag(*date)
	if err != nil {
		return err
	}

	record, milestone, err := services.NewNotificationScheduler(cli.db).MarkAttendance(services.AttendanceInput{
		StudentID: *studentID,
		GroupID:   *groupID,
		Date:      day,
		Status:    models.AttendanceStatus(strings.ToLower(strings.TrimSpace(*status))),
		Notes:     *notes,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "attendance %d marked %s\n", record.ID, record.Status)
	if milestone != nil {
		fmt.Fprintf(cli.out, "%s: %s\n", milestone.Title, milestone.Message)
	}
	return nil
}

func (cli *commandLine) attendance(args []string) error {
	fs := cli.flagSet("attendance")
	studentID := fs.Uint("student", 0, "student id")
	groupID := fs.Uint("group", 0, "group id")
	date := fs.String("date", "", "only this day")
	if err := parse(fs, args); err != nil {
		return err
	}
	filter := services.AttendanceFilter{StudentID: *studentID, GroupID: *groupID}
	if *date != "" {
		day, err := parseDateFlag(*date)
		if err != nil {
			return err
		}
		filter.Date = day
	}
	records, err := services.NewAttendanceService(cli.db).List(filter)
	if err != nil {
		return err
	}
	for _, r := range records {
		var student, group string
		if r.Student != nil {
			student = r.Student.Name
		}
		if r.Group != nil {
			group = r.Group.Name
		}
		fmt.Fprintf(cli.out, "%4d  %s  %-24s %-20s %-8s %s\n",
			r.ID, time.Time(r.AttendanceDate).Format(time.DateOnly), student, group, r.Status, r.Notes)
	}
	return nil
}

func (cli *commandLine) summary(args []string) error {
	fs := cli.flagSet("summary")
	studentID := fs.Uint("student", 0, "student id")
	groupID := fs.Uint("group", 0, "group id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *studentID == 0 || *groupID == 0 {
		return usage(fs)
	}
	s, err := services.NewAttendanceAggregator(cli.db).Summarize(*studentID, *groupID)
	if err != nil {
		return err
	}
	paid, err := services.NewPaymentService(cli.db).TotalFor(*studentID, *groupID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "present %d  absent %d  total %d  attendance %.2f%%  paid %.2f\n",
		s.Present, s.Absent, s.Total, s.Percentage, paid)
	return nil
}

func (cli *commandLine) notifications(args []string) error {
	fs := cli.flagSet("notifications")
	unread := fs.Bool("unread", false, "only unread notifications")
	studentID := fs.Uint("student", 0, "student id")
	if err := parse(fs, args); err != nil {
		return err
	}
	return cli.listNotifications(services.NotificationFilter{UnreadOnly: *unread, StudentID: *studentID})
}

func (cli *commandLine) listNotifications(filter services.NotificationFilter) error {
	list, err := services.NewNotificationService(cli.db).List(filter)
	if err != nil {
		return err
	}
	for _, n := range utils.ToNotificationDTOs(list) {
		marker := "*"
		if n.Read {
			marker = " "
		}
		fmt.Fprintf(cli.out, "%s %4d  [%s] %s\n        %s\n", marker, n.ID, n.Priority, n.Title, n.Message)
	}
	return nil
}

func (cli *commandLine) read(args []string) error {
	fs := cli.flagSet("read")
	id := fs.Uint("id", 0, "notification id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id == 0 {
		return usage(fs)
	}
	return services.NewNotificationService(cli.db).MarkRead(*id)
}

func (cli *commandLine) readAll() error {
	n, err := services.NewNotificationService(cli.db).MarkAllRead()
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%d notifications marked as read\n", n)
	return nil
}

func (cli *commandLine) dismiss(args []string) error {
	fs := cli.flagSet("dismiss")
	id := fs.Uint("id", 0, "notification id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id == 0 {
		return usage(fs)
	}
	return services.NewNotificationService(cli.db).Delete(*id)
}

func (cli *commandLine) settings() error {
	s, err := services.NewSettingsService(cli.db).Load()
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s = %d\n", models.SettingPaymentReminderDays, s.PaymentReminderDays)
	fmt.Fprintf(cli.out, "%s = %t\n", models.SettingShowNotificationsOnStartup, s.ShowNotificationsOnStartup)
	fmt.Fprintf(cli.out, "%s = %t\n", models.SettingPaymentAlertEnabled, s.PaymentAlertEnabled)
	fmt.Fprintf(cli.out, "%s = %t\n", models.SettingAttendanceMilestoneEnabled, s.AttendanceMilestoneEnabled)
	fmt.Fprintf(cli.out, "%s = %d\n", models.SettingAttendanceMilestoneCount, s.AttendanceMilestoneCount)
	return nil
}

func (cli *commandLine) set(args []string) error {
	fs := cli.flagSet("set")
	key := fs.String("key", "", "setting key")
	value := fs.String("value", "", "new value")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *key == "" || *value == "" {
		return usage(fs)
	}
	if err := services.NewSettingsService(cli.db).Set(*key, *value); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s updated\n", *key)
	return nil
}

func (cli *commandLine) reportName(cmd string, args []string) (string, error) {
	fs := cli.flagSet(cmd)
	name := fs.String("name", "", strings.Join(services.ReportNames, ", "))
	if err := parse(fs, args); err != nil {
		return "", err
	}
	if *name == "" {
		return "", usage(fs)
	}
	return *name, nil
}

func (cli *commandLine) report(args []string) error {
	name, err := cli.reportName("report", args)
	if err != nil {
		return err
	}
	table, err := services.NewReportService(cli.db).Table(name)
	if err != nil {
		return err
	}
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(cli.out, "%s\n%s report\n%s\n", rule, name, rule)
	fmt.Fprintln(cli.out, strings.Join(table.Headers, " | "))
	for _, row := range table.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		fmt.Fprintln(cli.out, strings.Join(cells, " | "))
	}
	return nil
}

func (cli *commandLine) export(args []string) error {
	name, err := cli.reportName("export", args)
	if err != nil {
		return err
	}
	table, err := services.NewReportService(cli.db).Table(name)
	if err != nil {
		return err
	}
	path, err := cli.exporter.Export(table.Name, table.Headers, table.Rows)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "exported to %s\n", path)
	return nil
}
