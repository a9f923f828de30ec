package sim

import (
	"fmt"
	"io"
)

// Controls is the help banner printed at startup.
const Controls = "\n Flight Controls:\n ----------------\n w = forward, s = back\n a = strafe left, d = strafe right\n q = up, z = down\n" +
	"\n Force Controls:\n ---------------\n i = +z, k = -z\n j = +x, l = -x\n u = +y, m = -y\n" +
	"\n Miscellaneous:\n --------------\n p   = Pause\n x   = Toggle Shadows\n r   = Select Actor\n b   = Toggle Visualisation Mode\n F10 = Reset scene\n ESC = Exit\n"

// PrintControls writes the key binding banner to w.
func PrintControls(w io.Writer) {
	fmt.Fprint(w, Controls)
}
