package formatter

import (
	"strconv"

	"github.com/alexanderramin/learntrail/internal/domain"
)

func FormatUserList(users []*domain.User) string {
	if len(users) == 0 {
		return Dim("No users yet. Add one with `learntrail user add <name>`.") + "\n"
	}
	headers := []string{"#", "USERNAME", "EMAIL", "ID", "JOINED"}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		email := u.Email
		if email == "" {
			email = Dim("--")
		}
		rows = append(rows, []string{
			Dim(strconv.FormatInt(u.ID, 10)),
			Bold(u.Username),
			email,
			TruncID(u.UserUUID),
			HumanDate(u.CreatedAt),
		})
	}
	return RenderTable(headers, rows)
}
