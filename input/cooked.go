package input

// processCooked forwards buf to the active session, splitting out 2-byte
// encoded accelerator codes. A lead byte whose continuation byte is cut off
// by the end of buf is passed through as a plain byte; nothing is carried
// over to the next read. The byte following a lead is consumed with it even
// when it is not a continuation byte.
func (d *VT) processCooked(buf []byte) {
	sess := d.activeSession()

	start := 0
	for i := 0; i < len(buf); i++ {
		lead := buf[i]
		if lead>>5 != 0x6 || i+1 >= len(buf) {
			continue
		}
		i++
		if buf[i]>>6 != 0x2 {
			continue
		}
		c := uint16(lead&0x1f)<<6 | uint16(buf[i]&0x3f)
		if !d.opts.Accelerators.Contains(c) {
			continue
		}

		if i-1 > start {
			d.deliver(sess, buf[start:i-1])
		}
		start = i + 1

		d.sysKey(c)
	}

	if len(buf) > start {
		d.deliver(sess, buf[start:])
	}
}
