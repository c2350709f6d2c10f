package bmeta

import "github.com/sirupsen/logrus"

const defaultBuildMeta = "N/A" // Значение по умолчанию

// Fields возвращает версию, дату и коммит сборки в виде полей лога.
// Пустые значения заменяются на N/A.
func Fields(version, date, commit string) logrus.Fields {
	return logrus.Fields{
		"build_version": orDefault(version),
		"build_date":    orDefault(date),
		"build_commit":  orDefault(commit),
	}
}

// Log пишет метаданные сборки в лог.
func Log(logger *logrus.Logger, version, date, commit string) {
	logger.WithFields(Fields(version, date, commit)).Info("Build info")
}

func orDefault(v string) string {
	if v == "" {
		return defaultBuildMeta
	}
	return v
}
