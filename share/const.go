package share

// VERSION 版本号
const VERSION = "0.3.0"

// BUILDNAME 制品名称
const BUILDNAME = "codeide"

const PREFIX = "CODEIDE_"

const PATH = ".codeide"

// MAX_FILE_SIZE 导入时单个文件的默认大小上限（字节）
const MAX_FILE_SIZE = 1 << 20

const DEFAULT_EXPORT_FORMAT = "zip"

const MCP_SERVER_NAME = "codeide workspace"
